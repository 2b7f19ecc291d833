package memfile

// Entity is an (address, size, free flag) record keyed by an integer id
// (spec.md §3.2); no access flags are stored per entity. Object references carry the id, not the raw address, so the arena
// stays relocatable across growth and across save/restore.
type Entity struct {
	Address uint32
	Size    uint32
	Free    bool
}

// EntityTable maps entity ids to Entity records. It lives logically inside
// its owning Memory File (spec.md §4.1: "the entity table is itself stored
// within its Memory File at a known root address") but is kept as a Go
// slice here rather than literally serialized into the byte arena — the
// spec's invariant is about addressing discipline (ids, not pointers), not
// about the table's own storage medium.
type EntityTable struct {
	owner    *File
	entries  []Entity
}

func newEntityTable(owner *File) *EntityTable {
	return &EntityTable{owner: owner, entries: make([]Entity, 1, 64)} // id 0 reserved as "no entity"
}

// Lookup returns the Entity for id, or false if id is unknown or id==0.
func (t *EntityTable) Lookup(id uint32) (Entity, bool) {
	if id == 0 || int(id) >= len(t.entries) {
		return Entity{}, false
	}
	e := t.entries[id]
	if e.Free {
		return Entity{}, false
	}
	return e, true
}

// add appends a new live entity and returns its id.
func (t *EntityTable) add(addr, size uint32) uint32 {
	id := uint32(len(t.entries))
	t.entries = append(t.entries, Entity{Address: addr, Size: size})
	return id
}

// resize shrinks (or logically relabels) an entity's size in place.
func (t *EntityTable) resize(id, size uint32) {
	if int(id) < len(t.entries) {
		t.entries[id].Size = size
	}
}

// relocate updates an entity's address and size after a copying realloc.
func (t *EntityTable) relocate(id, addr, size uint32) {
	if int(id) < len(t.entries) {
		t.entries[id].Address = addr
		t.entries[id].Size = size
	}
}

// free marks id as free. Returns false if id was unknown.
func (t *EntityTable) free(id uint32) bool {
	if id == 0 || int(id) >= len(t.entries) {
		return false
	}
	t.entries[id].Free = true
	return true
}

// Len returns the number of entity slots ever allocated (including freed
// ones); this is the entity-table "length" referenced by spec.md §8's
// save/restore invariant.
func (t *EntityTable) Len() int { return len(t.entries) }

// Snapshot captures the current entity count for a later Restore. Entities
// allocated after the snapshot are discarded on Restore by truncating the
// table back to this length, which is valid because entity ids are
// assigned in strictly increasing bump order (spec.md §4.7).
func (t *EntityTable) Snapshot() int { return len(t.entries) }

// Restore truncates the entity table back to a prior Snapshot length,
// reclaiming every entity allocated since. It does not reclaim the
// underlying byte arena's bump pointer by default; restoring the bump
// pointer too would be unsound if a global-bank entity was allocated from
// the same arena after the snapshot in a design with file sharing, so
// RestoreBump is opt-in and only ever invoked by pscontext.Restore on the
// local file, which the spec guarantees is exclusively local-bank.
func (t *EntityTable) Restore(snapshot int) {
	if snapshot < 1 {
		snapshot = 1
	}
	if snapshot < len(t.entries) {
		t.entries = t.entries[:snapshot]
	}
}

// RestoreBump rewinds the owning file's bump pointer to addr, reclaiming
// the arena space used by entities allocated after a save point. Callers
// must restore the entity table (Restore) to a consistent snapshot first.
func (t *EntityTable) RestoreBump(addr int) {
	if addr >= 0 && addr <= len(t.owner.bytes) {
		t.owner.used = addr
	}
}

// BumpMark returns the file's current bump-pointer offset, for pairing with
// Snapshot/RestoreBump around a save point.
func (t *EntityTable) BumpMark() int { return t.owner.used }
