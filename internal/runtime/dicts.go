package runtime

import (
	"fmt"
	"hash/fnv"

	"github.com/cwbudde/go-xpost/internal/object"
)

// Dict entities are laid out as a 3-Object header (current-size, internal
// hash-table capacity, requested/user-visible capacity) followed by the
// hash-table's open-addressed (key, value) slots — spec.md §3.3: "entity
// sized for 2·(cap+1) Objects". An empty slot holds object.Null as its key.
// The hash-table capacity is rounded up from the requested one so the load
// factor stays under 1 (spec.md §4.4), but `maxlength`/`dictfull` (§4.4)
// are defined against what the caller asked for, not that internal
// over-allocation, so the two are tracked separately.
const dictHeaderSlots = 3

// ErrDictFull is returned by DictPut when a dict at capacity is asked to
// insert a genuinely new key (spec.md §4.4: "triggers a dictfull error
// unless the key already exists").
var ErrDictFull = fmt.Errorf("dictfull")

// NewDict allocates a dict entity with room for capacity (key, value)
// pairs, rounded up so the load factor stays under 1 (spec.md §4.4).
func NewDict(files *Files, bank object.Bank, capacity int) (object.Object, error) {
	hashCap := capacity*2 + 1 // keep at least one always-empty slot for probing
	f := files.Select(bank)
	ent, err := f.AllocEntity((dictHeaderSlots + hashCap*2) * ObjectSize)
	if err != nil {
		return object.InvalidObject(), err
	}
	buf := make([]byte, ObjectSize)
	encodeObject(object.IntObject(0), buf)
	if err := f.PutBytes(ent, 0, ObjectSize, buf); err != nil {
		return object.InvalidObject(), err
	}
	encodeObject(object.IntObject(int32(hashCap)), buf)
	if err := f.PutBytes(ent, ObjectSize, ObjectSize, buf); err != nil {
		return object.InvalidObject(), err
	}
	encodeObject(object.IntObject(int32(capacity)), buf)
	if err := f.PutBytes(ent, 2*ObjectSize, ObjectSize, buf); err != nil {
		return object.InvalidObject(), err
	}
	encodeObject(object.NullObject(), buf)
	for i := 0; i < hashCap; i++ {
		off := (dictHeaderSlots + i*2) * ObjectSize
		if err := f.PutBytes(ent, off, ObjectSize, buf); err != nil {
			return object.InvalidObject(), err
		}
	}
	return object.DictObject(ent, bank), nil
}

// dictHeader returns size (current binding count), hashCap (the internal
// over-allocated probe-table size), and reqCap (the capacity the caller
// originally asked for — what `maxlength` reports).
func dictHeader(files *Files, d object.Object) (size, hashCap, reqCap int, err error) {
	f := files.Select(d.BankOf)
	buf := make([]byte, ObjectSize)
	if err = f.GetBytes(d.Ent, 0, ObjectSize, buf); err != nil {
		return
	}
	size = int(decodeObject(buf).Int)
	if err = f.GetBytes(d.Ent, ObjectSize, ObjectSize, buf); err != nil {
		return
	}
	hashCap = int(decodeObject(buf).Int)
	if err = f.GetBytes(d.Ent, 2*ObjectSize, ObjectSize, buf); err != nil {
		return
	}
	reqCap = int(decodeObject(buf).Int)
	return
}

func dictSetSize(files *Files, d object.Object, size int) error {
	f := files.Select(d.BankOf)
	buf := make([]byte, ObjectSize)
	encodeObject(object.IntObject(int32(size)), buf)
	return f.PutBytes(d.Ent, 0, ObjectSize, buf)
}

func dictSlot(files *Files, d object.Object, i int) (key, value object.Object, err error) {
	f := files.Select(d.BankOf)
	buf := make([]byte, ObjectSize)
	off := (dictHeaderSlots + i*2) * ObjectSize
	if err = f.GetBytes(d.Ent, off, ObjectSize, buf); err != nil {
		return
	}
	key = decodeObject(buf)
	if err = f.GetBytes(d.Ent, off+ObjectSize, ObjectSize, buf); err != nil {
		return
	}
	value = decodeObject(buf)
	return
}

func dictSetSlot(files *Files, d object.Object, i int, key, value object.Object) error {
	f := files.Select(d.BankOf)
	buf := make([]byte, ObjectSize)
	off := (dictHeaderSlots + i*2) * ObjectSize
	encodeObject(key, buf)
	if err := f.PutBytes(d.Ent, off, ObjectSize, buf); err != nil {
		return err
	}
	encodeObject(value, buf)
	return f.PutBytes(d.Ent, off+ObjectSize, ObjectSize, buf)
}

// dictKeyHash and dictKeyEqual implement spec.md §4.4's comparison rule:
// name keys compare by id (within a bank), integer and string keys compare
// by value.
func dictKeyHash(files *Files, k object.Object) uint64 {
	h := fnv.New64a()
	switch k.Tag {
	case object.Name:
		fmt.Fprintf(h, "N%d:%d", k.BankOf, k.Ent)
	case object.Integer:
		fmt.Fprintf(h, "I%d", k.Int)
	case object.String:
		b, err := StringBytes(files, k)
		if err == nil {
			h.Write([]byte("S"))
			h.Write(b)
		}
	default:
		fmt.Fprintf(h, "X%d:%d", k.Tag, k.Ent)
	}
	return h.Sum64()
}

func dictKeyEqual(files *Files, a, b object.Object) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case object.Name:
		return a.Ent == b.Ent && a.BankOf == b.BankOf
	case object.Integer:
		return a.Int == b.Int
	case object.String:
		sa, err1 := StringBytes(files, a)
		sb, err2 := StringBytes(files, b)
		return err1 == nil && err2 == nil && string(sa) == string(sb)
	default:
		return object.Equal(a, b)
	}
}

// DictPut inserts or replaces the binding for key (spec.md §4.4: "inserts
// or replaces"). Returns ErrDictFull if the dict is at capacity and key is
// not already present.
func DictPut(files *Files, d object.Object, key, value object.Object) error {
	size, hashCap, reqCap, err := dictHeader(files, d)
	if err != nil {
		return err
	}
	h := dictKeyHash(files, key)
	for probe := 0; probe < hashCap; probe++ {
		i := int((h + uint64(probe)) % uint64(hashCap))
		k, _, err := dictSlot(files, d, i)
		if err != nil {
			return err
		}
		if k.Tag == object.Null {
			if size >= reqCap {
				return ErrDictFull
			}
			if err := dictSetSlot(files, d, i, key, value); err != nil {
				return err
			}
			return dictSetSize(files, d, size+1)
		}
		if dictKeyEqual(files, k, key) {
			return dictSetSlot(files, d, i, key, value)
		}
	}
	return ErrDictFull
}

// DictGet returns the value bound to key, or a null Object if key is not
// known (spec.md §4.4).
func DictGet(files *Files, d object.Object, key object.Object) (object.Object, error) {
	_, hashCap, _, err := dictHeader(files, d)
	if err != nil {
		return object.InvalidObject(), err
	}
	h := dictKeyHash(files, key)
	for probe := 0; probe < hashCap; probe++ {
		i := int((h + uint64(probe)) % uint64(hashCap))
		k, v, err := dictSlot(files, d, i)
		if err != nil {
			return object.InvalidObject(), err
		}
		if k.Tag == object.Null {
			return object.NullObject(), nil
		}
		if dictKeyEqual(files, k, key) {
			return v, nil
		}
	}
	return object.NullObject(), nil
}

// DictKnown reports whether key is bound in d.
func DictKnown(files *Files, d object.Object, key object.Object) (bool, error) {
	_, hashCap, _, err := dictHeader(files, d)
	if err != nil {
		return false, err
	}
	h := dictKeyHash(files, key)
	for probe := 0; probe < hashCap; probe++ {
		i := int((h + uint64(probe)) % uint64(hashCap))
		k, _, err := dictSlot(files, d, i)
		if err != nil {
			return false, err
		}
		if k.Tag == object.Null {
			return false, nil
		}
		if dictKeyEqual(files, k, key) {
			return true, nil
		}
	}
	return false, nil
}

// DictLength returns the dict's current binding count.
func DictLength(files *Files, d object.Object) (int, error) {
	size, _, _, err := dictHeader(files, d)
	return size, err
}

// DictCapacity returns the dict's usable, user-visible capacity — what the
// caller originally asked for via NewDict (spec.md §4.4 invariant length ≤
// capacity; `maxlength` reports this, not the internal over-allocated
// hash-table size).
func DictCapacity(files *Files, d object.Object) (int, error) {
	_, _, reqCap, err := dictHeader(files, d)
	return reqCap, err
}

// DictEach calls fn for every (key, value) binding currently in d. Iteration
// order is slot order, not insertion order — spec.md requires the dict's
// semantics to be "insertion-order-independent", so no caller may depend on
// a particular order.
func DictEach(files *Files, d object.Object, fn func(key, value object.Object) error) error {
	_, hashCap, _, err := dictHeader(files, d)
	if err != nil {
		return err
	}
	for i := 0; i < hashCap; i++ {
		k, v, err := dictSlot(files, d, i)
		if err != nil {
			return err
		}
		if k.Tag == object.Null {
			continue
		}
		if err := fn(k, v); err != nil {
			return err
		}
	}
	return nil
}
