package memfile

// undoRecord captures the bytes a PutBytes call is about to overwrite, so a
// later Restore can put them back (spec.md §4.7: "rolls back mutations via
// an undo log recorded at put-time on marked entities").
type undoRecord struct {
	addr int
	old  []byte
}

// BeginRecording turns on undo logging for subsequent PutBytes calls. Only
// the local Memory File is ever recorded (spec.md §4.7: "the global Memory
// File is not saved").
func (f *File) BeginRecording() { f.recording = true }

// UndoMark returns the current length of the undo log, to pair with a
// later UndoTo call.
func (f *File) UndoMark() int { return len(f.undoLog) }

// UndoTo replays the undo log back to mark, in reverse order, restoring
// every recorded byte range, then truncates the log to mark.
func (f *File) UndoTo(mark int) {
	for i := len(f.undoLog) - 1; i >= mark; i-- {
		rec := f.undoLog[i]
		copy(f.bytes[rec.addr:rec.addr+len(rec.old)], rec.old)
	}
	f.undoLog = f.undoLog[:mark]
}

// recordPut appends an undo record for a write about to happen at absolute
// address [addr, addr+n). Called from PutBytes before the copy.
func (f *File) recordPut(addr, n int) {
	if !f.recording {
		return
	}
	old := make([]byte, n)
	copy(old, f.bytes[addr:addr+n])
	f.undoLog = append(f.undoLog, undoRecord{addr: addr, old: old})
}
