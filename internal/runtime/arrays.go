package runtime

import (
	"fmt"

	"github.com/cwbudde/go-xpost/internal/object"
)

// NewArray allocates an entity sized for n Objects in bank, initializing
// every slot to null, and returns a literal array Object covering it
// (spec.md §3.3). An executable array built this way becomes a procedure
// once its Exec flag is set.
func NewArray(files *Files, bank object.Bank, n int) (object.Object, error) {
	f := files.Select(bank)
	ent, err := f.AllocEntity(n * ObjectSize)
	if err != nil {
		return object.InvalidObject(), err
	}
	buf := make([]byte, ObjectSize)
	encodeObject(object.NullObject(), buf)
	for i := 0; i < n; i++ {
		if err := f.PutBytes(ent, i*ObjectSize, ObjectSize, buf); err != nil {
			return object.InvalidObject(), err
		}
	}
	return object.ArrayObject(ent, 0, uint32(n), bank), nil
}

// ArrayFromElements allocates an array entity and populates it from elems,
// preserving order. Used by the scanner when it builds a procedure array
// from a `{ ... }` literal.
func ArrayFromElements(files *Files, bank object.Bank, elems []object.Object) (object.Object, error) {
	a, err := NewArray(files, bank, len(elems))
	if err != nil {
		return object.InvalidObject(), err
	}
	for i, e := range elems {
		if err := ArrayPut(files, a, i, e); err != nil {
			return object.InvalidObject(), err
		}
	}
	return a, nil
}

// ArrayGet returns element i of array Object a (i is relative to a's own
// offset, so subarrays index from 0 regardless of their parent's range).
func ArrayGet(files *Files, a object.Object, i int) (object.Object, error) {
	if a.Tag != object.Array {
		return object.InvalidObject(), fmt.Errorf("runtime: ArrayGet: not an array object (%s)", a.Tag)
	}
	if i < 0 || i >= int(a.Length) {
		return object.InvalidObject(), fmt.Errorf("runtime: ArrayGet: index %d out of bounds for array of length %d", i, a.Length)
	}
	f := files.Select(a.BankOf)
	buf := make([]byte, ObjectSize)
	if err := f.GetBytes(a.Ent, (int(a.Offset)+i)*ObjectSize, ObjectSize, buf); err != nil {
		return object.InvalidObject(), err
	}
	return decodeObject(buf), nil
}

// ArrayPut overwrites element i of array Object a.
func ArrayPut(files *Files, a object.Object, i int, v object.Object) error {
	if a.Tag != object.Array {
		return fmt.Errorf("runtime: ArrayPut: not an array object (%s)", a.Tag)
	}
	if i < 0 || i >= int(a.Length) {
		return fmt.Errorf("runtime: ArrayPut: index %d out of bounds for array of length %d", i, a.Length)
	}
	f := files.Select(a.BankOf)
	buf := make([]byte, ObjectSize)
	encodeObject(v, buf)
	return f.PutBytes(a.Ent, (int(a.Offset)+i)*ObjectSize, ObjectSize, buf)
}

// Subarray returns an Object referring to the same entity as a, covering
// [start, start+length) of a's own range; shares the entity (spec.md §3.3).
func Subarray(a object.Object, start, length int) (object.Object, error) {
	if a.Tag != object.Array {
		return object.InvalidObject(), fmt.Errorf("runtime: Subarray: not an array object (%s)", a.Tag)
	}
	if start < 0 || length < 0 || start+length > int(a.Length) {
		return object.InvalidObject(), fmt.Errorf("runtime: Subarray: range [%d:%d) out of bounds for array of length %d", start, start+length, a.Length)
	}
	return object.ArrayObject(a.Ent, a.Offset+uint32(start), uint32(length), a.BankOf), nil
}

// ArrayLength returns the element count of an array Object.
func ArrayLength(a object.Object) int { return int(a.Length) }

// ArrayElements copies out every element of a, in order. Used by operators
// such as forall and copy, and by device code walking `ImgData` (spec.md
// §4.9).
func ArrayElements(files *Files, a object.Object) ([]object.Object, error) {
	n := ArrayLength(a)
	out := make([]object.Object, n)
	for i := 0; i < n; i++ {
		v, err := ArrayGet(files, a, i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
