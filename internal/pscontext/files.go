package pscontext

import (
	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/runtime"
)

// FileState is the host-side record a File Object's entity id indexes into
// (spec.md §3.1: "file: entity id pointing to a file record"). The entity
// itself is a one-byte marker allocated purely so the id participates in
// the normal entity-liveness/relocation discipline; the actual byte cursor
// lives here, outside the Memory File, since it's read-only streaming
// state rather than interpreter-addressable heap bytes.
type FileState struct {
	Data   []byte
	Pos    int
	Closed bool
}

// OpenFile registers data as a new executable file Object's backing bytes
// and returns the Object (spec.md §4.6 "executable file" case; used by the
// embedding API to feed a program's text to the execution loop).
func (c *Context) OpenFile(data []byte) (object.Object, error) {
	ent, err := c.Local.AllocEntity(1)
	if err != nil {
		return object.InvalidObject(), err
	}
	if c.openFiles == nil {
		c.openFiles = make(map[uint32]*FileState)
	}
	c.openFiles[ent] = &FileState{Data: data}
	return object.Object{Tag: object.File, Ent: ent, BankOf: object.Local, Exec: true}, nil
}

// FileState returns the backing state for a File Object, if still open.
func (c *Context) FileState(f object.Object) (*FileState, bool) {
	fs, ok := c.openFiles[f.Ent]
	if !ok || fs.Closed {
		return nil, false
	}
	return fs, true
}

// CloseFile marks a File Object's backing state closed. Its entity is left
// for normal GC/save-restore reclamation.
func (c *Context) CloseFile(f object.Object) {
	if fs, ok := c.openFiles[f.Ent]; ok {
		fs.Closed = true
	}
}

// runtimeFiles returns the composite-layer Files bundle (the same value as
// c.Files). It is unexported and nothing in this module calls it.
func (c *Context) runtimeFiles() *runtime.Files { return c.Files }
