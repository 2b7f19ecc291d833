package runtime

import (
	"fmt"

	"github.com/cwbudde/go-xpost/internal/object"
)

// NewString allocates a fresh N-byte entity in bank and copies init into it
// (zero-padding if init is shorter than n). Returns a literal string Object
// covering the whole entity (spec.md §3.3).
func NewString(files *Files, bank object.Bank, n int, init []byte) (object.Object, error) {
	f := files.Select(bank)
	ent, err := f.AllocEntity(n)
	if err != nil {
		return object.InvalidObject(), err
	}
	if len(init) > 0 {
		m := len(init)
		if m > n {
			m = n
		}
		if err := f.PutBytes(ent, 0, m, init); err != nil {
			return object.InvalidObject(), err
		}
	}
	return object.StringObject(ent, 0, uint32(n), bank), nil
}

// StringBytes returns a copy of the bytes a string Object refers to.
func StringBytes(files *Files, s object.Object) ([]byte, error) {
	if s.Tag != object.String {
		return nil, fmt.Errorf("runtime: StringBytes: not a string object (%s)", s.Tag)
	}
	f := files.Select(s.BankOf)
	buf := make([]byte, s.Length)
	if err := f.GetBytes(s.Ent, int(s.Offset), int(s.Length), buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// StringPutBytes overwrites part of a string's underlying bytes, starting
// at rel (relative to the string Object's own offset, i.e. index 0 is the
// string's first byte regardless of how much of the entity it covers).
func StringPutBytes(files *Files, s object.Object, rel int, src []byte) error {
	if s.Tag != object.String {
		return fmt.Errorf("runtime: StringPutBytes: not a string object (%s)", s.Tag)
	}
	if rel < 0 || rel+len(src) > int(s.Length) {
		return fmt.Errorf("runtime: StringPutBytes: range [%d:%d) out of bounds for string of length %d", rel, rel+len(src), s.Length)
	}
	f := files.Select(s.BankOf)
	return f.PutBytes(s.Ent, int(s.Offset)+rel, len(src), src)
}

// Substring returns an Object referring to the same entity as s, covering
// [start, start+length) of s's own range. Substrings share the entity with
// their parent, per spec.md §3.3.
func Substring(s object.Object, start, length int) (object.Object, error) {
	if s.Tag != object.String {
		return object.InvalidObject(), fmt.Errorf("runtime: Substring: not a string object (%s)", s.Tag)
	}
	if start < 0 || length < 0 || start+length > int(s.Length) {
		return object.InvalidObject(), fmt.Errorf("runtime: Substring: range [%d:%d) out of bounds for string of length %d", start, start+length, s.Length)
	}
	return object.StringObject(s.Ent, s.Offset+uint32(start), uint32(length), s.BankOf), nil
}

// StringLength returns the element count of a string Object, mirroring
// spec.md §8 scenario 4 ("(hello) length" leaves 5).
func StringLength(s object.Object) int { return int(s.Length) }
