package pscontext

import "fmt"

// ErrInvalidRestore is returned when a save-stamp passed to Restore doesn't
// correspond to a live save point (spec.md §7 invalidrestore).
var ErrInvalidRestore = fmt.Errorf("invalidrestore")

// saveRecord captures everything Restore needs to unwind a save point
// (spec.md §4.7): where the local entity table and bump pointer stood, how
// far back the undo log needs replaying, and the four stacks' depths.
type saveRecord struct {
	id             int32
	entitySnapshot int
	bumpMark       int
	undoMark       int
	operandDepth   int
	execDepth      int
	dictDepth      int
	graphicsDepth  int
}

// Save captures the local Memory File's current state and pushes a new
// save level. Returns the save-stamp id to later pass to Restore. Only the
// local file is ever saved (spec.md §4.7: "the global Memory File is not
// saved").
func (c *Context) Save() int32 {
	c.Local.BeginRecording()
	id := c.nextSaveID
	c.nextSaveID++
	c.saveStack = append(c.saveStack, saveRecord{
		id:             id,
		entitySnapshot: c.Local.Entities().Snapshot(),
		bumpMark:       c.Local.Entities().BumpMark(),
		undoMark:       c.Local.UndoMark(),
		operandDepth:   c.Operand.Depth(),
		execDepth:      c.Execution.Depth(),
		dictDepth:      c.Dictionary.Depth(),
		graphicsDepth:  c.Graphics.Depth(),
	})
	c.SaveLevel = int32(len(c.saveStack))
	return id
}

// Restore locates the save point with the given stamp id, discards every
// entity allocated since, rolls back recorded mutations, and truncates the
// four stacks back to their depths at that save (spec.md §4.7, §8
// save/restore invariant). Restoring to stamp also invalidates every save
// point nested inside it.
func (c *Context) Restore(stamp int32) error {
	idx := -1
	for i := len(c.saveStack) - 1; i >= 0; i-- {
		if c.saveStack[i].id == stamp {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrInvalidRestore
	}
	rec := c.saveStack[idx]

	c.Local.UndoTo(rec.undoMark)
	c.Local.Entities().Restore(rec.entitySnapshot)
	c.Local.Entities().RestoreBump(rec.bumpMark)

	c.Operand.TrimTo(rec.operandDepth)
	c.Execution.TrimTo(rec.execDepth)
	c.Dictionary.TrimTo(rec.dictDepth)
	c.Graphics.TrimTo(rec.graphicsDepth)

	c.saveStack = c.saveStack[:idx]
	c.SaveLevel = int32(len(c.saveStack))
	return nil
}
