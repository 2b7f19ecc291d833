// Package object implements the interpreter's tagged value: a fixed-width
// record that either encodes a simple value directly or refers, by entity
// id, to bytes living in one of a Context's two memory files.
package object

// Type is the tag carried by every Object.
type Type byte

const (
	Null Type = iota
	Mark
	Boolean
	Integer
	Real
	Operator
	Save
	Name
	String
	Array
	Dict
	File
	FileType
	Invalid
)

var typeNames = [...]string{
	Null:     "nulltype",
	Mark:     "marktype",
	Boolean:  "booleantype",
	Integer:  "integertype",
	Real:     "realtype",
	Operator: "operatortype",
	Save:     "savetype",
	Name:     "nametype",
	String:   "stringtype",
	Array:    "arraytype",
	Dict:     "dicttype",
	File:     "filetype",
	FileType: "filetypetype",
	Invalid:  "invalidtype",
}

func (t Type) String() string {
	if int(t) < len(typeNames) && typeNames[t] != "" {
		return typeNames[t]
	}
	return "unknown"
}

// Access is the set of permission flags carried in the tag word.
type Access byte

const (
	AccessNone      Access = 0
	AccessExecute   Access = 1 << iota
	AccessRead
	AccessWrite
	AccessUnlimited
)

// Bank selects which of a Context's two memory files owns a composite's bytes.
type Bank byte

const (
	Local Bank = iota
	Global
)

// Object is the interpreter's fixed-width tagged value. The tag half
// carries type, access and the executable flag; the payload half is
// interpreted according to Tag. Composite types (String, Array) additionally
// carry Offset/Length so substrings and subarrays can share one entity.
type Object struct {
	Tag    Type
	Access Access
	Exec   bool // executable flag: distinguishes literal vs. executable names/arrays/strings/files

	// Scratch fields from the tag word (padw-equivalent). No constructor in
	// this package sets them; operator objects keep their opcode in Ent.
	Pad0 uint16
	Pad1 uint16

	// Payload, interpreted according to Tag:
	//   Boolean:            Bool
	//   Integer:            Int
	//   Real:               Float
	//   Operator:           Ent (opcode index into the operator table)
	//   Save:               Int (save-stamp id)
	//   Name:                Ent (name-table id), BankOf (which trie)
	//   String, Array:      Ent, Offset, Length, BankOf
	//   Dict:               Ent (entity holding the header+slots), BankOf
	//   File, FileType:     Ent (entity holding the file record), BankOf
	Bool   bool
	Int    int32
	Float  float32
	Ent    uint32
	Offset uint32
	Length uint32
	BankOf Bank
}

// NullObject returns the canonical null object.
func NullObject() Object { return Object{Tag: Null} }

// MarkObject returns a sentinel mark object.
func MarkObject() Object { return Object{Tag: Mark} }

// InvalidObject returns the sentinel used when an allocation or lookup fails.
func InvalidObject() Object { return Object{Tag: Invalid} }

func BoolObject(b bool) Object { return Object{Tag: Boolean, Bool: b} }

func IntObject(i int32) Object { return Object{Tag: Integer, Int: i} }

func RealObject(f float32) Object { return Object{Tag: Real, Float: f} }

// OperatorObject constructs an executable operator reference by opcode.
func OperatorObject(opcode uint32) Object {
	return Object{Tag: Operator, Ent: opcode, Exec: true}
}

// SaveObject constructs a save-stamp object for the given save level id.
func SaveObject(stamp int32) Object {
	return Object{Tag: Save, Int: stamp}
}

// NameObject constructs a (literal, by default) name reference.
func NameObject(id uint32, bank Bank) Object {
	return Object{Tag: Name, Ent: id, BankOf: bank}
}

// StringObject constructs a string reference into entity ent.
func StringObject(ent uint32, offset, length uint32, bank Bank) Object {
	return Object{Tag: String, Ent: ent, Offset: offset, Length: length, BankOf: bank}
}

// ArrayObject constructs an array reference into entity ent. Elements are
// counted, not byte-sized: Length is an Object count.
func ArrayObject(ent uint32, offset, length uint32, bank Bank) Object {
	return Object{Tag: Array, Ent: ent, Offset: offset, Length: length, BankOf: bank}
}

// DictObject constructs a dict reference. Length is left zero for dicts; the
// entry count lives in the entity header.
func DictObject(ent uint32, bank Bank) Object {
	return Object{Tag: Dict, Ent: ent, BankOf: bank}
}

// FileObject constructs a file (or filetype) reference.
func FileObject(ent uint32, bank Bank, asType bool) Object {
	tag := File
	if asType {
		tag = FileType
	}
	return Object{Tag: tag, Ent: ent, BankOf: bank}
}

// GetType returns the object's type tag.
func (o Object) GetType() Type { return o.Tag }

// GetEnt returns the entity id a composite object refers to. Returns 0 for
// simple objects, which have no entity.
func (o Object) GetEnt() uint32 { return o.Ent }

// GetAccess returns the access flags carried by the object.
func (o Object) GetAccess() Access { return o.Access }

// IsExecutable reports whether the executable flag is set.
func (o Object) IsExecutable() bool { return o.Exec }

// SetExecutable returns a copy of o with the executable flag set to v.
func (o Object) SetExecutable(v bool) Object {
	o.Exec = v
	return o
}

// IsComposite reports whether o's payload is an entity reference.
func (o Object) IsComposite() bool {
	switch o.Tag {
	case Name, String, Array, Dict, File, FileType:
		return true
	default:
		return false
	}
}

// IsNumber reports whether o is integer or real (spec.md §4.5 numbertype).
func (o Object) IsNumber() bool {
	return o.Tag == Integer || o.Tag == Real
}

// AsFloat coerces an Integer or Real object to float32 (spec.md §4.5 floattype).
func (o Object) AsFloat() float32 {
	if o.Tag == Integer {
		return float32(o.Int)
	}
	return o.Float
}

// Equal implements spec.md §4.2 equality: structural for simples, and
// identity-by-entity (same entity, offset, length, bank) for composites.
func Equal(a, b Object) bool {
	if a.Tag != b.Tag {
		// integer/real do not compare equal across type in PostScript eq.
		return false
	}
	switch a.Tag {
	case Null, Mark:
		return true
	case Boolean:
		return a.Bool == b.Bool
	case Integer:
		return a.Int == b.Int
	case Real:
		return a.Float == b.Float
	case Operator:
		return a.Ent == b.Ent
	case Save:
		return a.Int == b.Int
	case Name:
		return a.Ent == b.Ent && a.BankOf == b.BankOf
	case String, Array:
		return a.Ent == b.Ent && a.Offset == b.Offset && a.Length == b.Length && a.BankOf == b.BankOf
	case Dict, File, FileType:
		return a.Ent == b.Ent && a.BankOf == b.BankOf
	default:
		return false
	}
}
