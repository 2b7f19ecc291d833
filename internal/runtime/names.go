package runtime

import "github.com/cwbudde/go-xpost/internal/object"

// NameTable interns byte-strings to small integer ids, idempotently
// (spec.md §4.3). One NameTable exists per bank (local, global); together
// the pair is the "two parallel trees" spec.md describes. A map serves the
// same interning contract a trie would (stable, idempotent ids) without the
// extra code a literal trie would need for what the spec actually tests:
// `cons(cons(s))` yields the same id, and distinct bytes never collide.
type NameTable struct {
	ids      map[string]uint32
	names    []string // index by id; index 0 unused so id 0 means "no name"
}

// NewNameTable returns an empty table with id 0 reserved.
func NewNameTable() *NameTable {
	return &NameTable{ids: make(map[string]uint32), names: make([]string, 1)}
}

// Intern returns the id for bytes, allocating a new one if bytes hasn't
// been seen in this table before.
func (t *NameTable) Intern(bytes string) uint32 {
	if id, ok := t.ids[bytes]; ok {
		return id
	}
	id := uint32(len(t.names))
	t.names = append(t.names, bytes)
	t.ids[bytes] = id
	return id
}

// Bytes returns the interned byte-string for id.
func (t *NameTable) Bytes(id uint32) string {
	if int(id) < len(t.names) {
		return t.names[id]
	}
	return ""
}

// Names bundles the local and global name tables a Context owns.
type Names struct {
	Local  *NameTable
	Global *NameTable
}

func NewNames() *Names {
	return &Names{Local: NewNameTable(), Global: NewNameTable()}
}

// Select returns the table for bank.
func (n *Names) Select(bank object.Bank) *NameTable {
	if bank == object.Global {
		return n.Global
	}
	return n.Local
}

// ConsName interns bytes in bank's table and returns a literal Name Object
// (spec.md §4.3 cons). Idempotent: calling it twice with the same bytes and
// bank returns the same id.
func (n *Names) ConsName(bank object.Bank, bytes string) object.Object {
	id := n.Select(bank).Intern(bytes)
	return object.NameObject(id, bank)
}

// NameBytes returns the interned bytes for a Name object.
func (n *Names) NameBytes(o object.Object) string {
	return n.Select(o.BankOf).Bytes(o.Ent)
}

// SystemNames lists the names precomputed at Context creation, in the
// stable order spec.md §4.3 requires implementers to preserve so operator
// bodies can cache name-id handles across calls. Interned into the global
// table, since systemdict/globaldict survive every save/restore.
var SystemNames = []string{
	"Private", "width", "height", "DeviceRGB", ".copydict",
	"ImgData", "OutputBufferOut", "Create", "Emit", "Flush",
	"errorname", "command", "newerror", "ostack", "estack", "dstack",
	"systemdict", "globaldict", "userdict", "errordict", "$error",
}

// InternSystemNames reserves SystemNames' ids in the global table, in
// order, before any user program runs.
func (n *Names) InternSystemNames() map[string]object.Object {
	out := make(map[string]object.Object, len(SystemNames))
	for _, s := range SystemNames {
		out[s] = n.ConsName(object.Global, s)
	}
	return out
}
