// Package memfile implements the interpreter's Memory File: a growable
// byte arena plus the Entity Table that indexes regions inside it (spec.md
// §3.2, §4.1). Two Memory Files coexist per context (local and global); a
// composite Object's bank bit selects which one owns its bytes.
package memfile

import "fmt"

// defaultInitialSize is used when callers don't specify one.
const defaultInitialSize = 4096

// File is a single linear byte arena with an Entity Table living inside it.
//
// Allocation is bump-pointer; on exhaustion the arena doubles (spec.md
// §3.2). Growth reallocates the backing slice, which is why callers must
// never cache a raw []byte/pointer into a File's bytes across an
// allocating operation — all I/O goes through GetBytes/PutBytes so growth
// is contained here instead of leaking into every operator body.
type File struct {
	bytes     []byte
	used      int
	entities  *EntityTable
	recording bool
	undoLog   []undoRecord
}

// New creates a Memory File with the given initial capacity (rounded up to
// at least defaultInitialSize) and an empty entity table.
func New(initialSize int) *File {
	if initialSize < defaultInitialSize {
		initialSize = defaultInitialSize
	}
	f := &File{bytes: make([]byte, initialSize)}
	f.entities = newEntityTable(f)
	return f
}

// Entities returns the Memory File's Entity Table.
func (f *File) Entities() *EntityTable { return f.entities }

// Size returns the current arena capacity in bytes.
func (f *File) Size() int { return len(f.bytes) }

// Used returns the number of bytes bump-allocated so far.
func (f *File) Used() int { return f.used }

// Grow ensures the arena has at least minBytes of free space beyond the
// current bump pointer, doubling (repeatedly, if needed) until it does.
// Entity contents are preserved across growth (spec.md §4.1 invariant);
// entity table addresses are unaffected since they are offsets, not raw
// pointers.
func (f *File) Grow(minBytes int) {
	need := f.used + minBytes
	newSize := len(f.bytes)
	if newSize == 0 {
		newSize = defaultInitialSize
	}
	for newSize < need {
		newSize *= 2
	}
	if newSize == len(f.bytes) {
		return
	}
	grown := make([]byte, newSize)
	copy(grown, f.bytes)
	f.bytes = grown
}

// bumpAlloc reserves n bytes at the current offset, growing first if
// necessary, and returns the offset.
func (f *File) bumpAlloc(n int) uint32 {
	if f.used+n > len(f.bytes) {
		f.Grow(n)
	}
	off := f.used
	f.used += n
	return uint32(off)
}

// GetBytes copies n bytes from entity ent at offset off into dst.
func (f *File) GetBytes(ent uint32, off, n int, dst []byte) error {
	e, ok := f.entities.Lookup(ent)
	if !ok {
		return fmt.Errorf("memfile: get_bytes: unknown entity %d", ent)
	}
	if off < 0 || n < 0 || off+n > int(e.Size) {
		return fmt.Errorf("memfile: get_bytes: range [%d:%d) out of bounds for entity %d (size %d)", off, off+n, ent, e.Size)
	}
	addr := int(e.Address) + off
	copy(dst, f.bytes[addr:addr+n])
	return nil
}

// PutBytes copies n bytes from src into entity ent at offset off.
func (f *File) PutBytes(ent uint32, off, n int, src []byte) error {
	e, ok := f.entities.Lookup(ent)
	if !ok {
		return fmt.Errorf("memfile: put_bytes: unknown entity %d", ent)
	}
	if off < 0 || n < 0 || off+n > int(e.Size) {
		return fmt.Errorf("memfile: put_bytes: range [%d:%d) out of bounds for entity %d (size %d)", off, off+n, ent, e.Size)
	}
	addr := int(e.Address) + off
	f.recordPut(addr, n)
	copy(f.bytes[addr:addr+n], src[:n])
	return nil
}

// AllocEntity bumps-allocates size bytes and registers a new entity.
func (f *File) AllocEntity(size int) (uint32, error) {
	if size < 0 {
		return 0, fmt.Errorf("memfile: alloc_entity: negative size %d", size)
	}
	addr := f.bumpAlloc(size)
	return f.entities.add(addr, uint32(size)), nil
}

// ReallocEntity shrinks an entity in place; to grow one it bump-allocates a
// fresh region, copies the old content, and points the entity at the new
// region. The old region is left behind unused; nothing marks it free.
func (f *File) ReallocEntity(ent uint32, newSize int) error {
	e, ok := f.entities.Lookup(ent)
	if !ok {
		return fmt.Errorf("memfile: realloc_entity: unknown entity %d", ent)
	}
	if newSize <= int(e.Size) {
		f.entities.resize(ent, uint32(newSize))
		return nil
	}
	newAddr := f.bumpAlloc(newSize)
	copy(f.bytes[newAddr:int(newAddr)+int(e.Size)], f.bytes[e.Address:e.Address+e.Size])
	f.entities.relocate(ent, newAddr, uint32(newSize))
	return nil
}

// FreeEntity marks ent as free. Freed entities are never dereferenced
// again; a later GC pass may coalesce their space (spec.md §4.2, free_entity).
func (f *File) FreeEntity(ent uint32) error {
	if !f.entities.free(ent) {
		return fmt.Errorf("memfile: free_entity: unknown entity %d", ent)
	}
	return nil
}

// rawSlice exposes the live byte range for entity ent. Callers must not
// retain the returned slice across any allocating call into this File, and
// in general should prefer GetBytes/PutBytes; this exists for composite
// layers (internal/runtime) that need direct structured access without an
// intermediate copy for performance-sensitive paths like array indexing.
func (f *File) rawSlice(ent uint32) ([]byte, error) {
	e, ok := f.entities.Lookup(ent)
	if !ok {
		return nil, fmt.Errorf("memfile: unknown entity %d", ent)
	}
	return f.bytes[e.Address : e.Address+e.Size], nil
}

// RawSlice is the exported form of rawSlice for use by internal/runtime.
func (f *File) RawSlice(ent uint32) ([]byte, error) { return f.rawSlice(ent) }
