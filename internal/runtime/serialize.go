package runtime

import (
	"encoding/binary"
	"math"

	"github.com/cwbudde/go-xpost/internal/object"
)

// ObjectSize is the fixed on-disk width of a serialized object.Object, used
// whenever a composite entity's bytes hold Objects rather than raw string
// bytes (spec.md §3.3: array and dict entities "hold Objects").
const ObjectSize = 32

// encodeObject writes o into buf[:ObjectSize].
func encodeObject(o object.Object, buf []byte) {
	buf[0] = byte(o.Tag)
	buf[1] = byte(o.Access)
	if o.Exec {
		buf[2] = 1
	}
	buf[3] = byte(o.BankOf)
	binary.LittleEndian.PutUint16(buf[4:6], o.Pad0)
	binary.LittleEndian.PutUint16(buf[6:8], o.Pad1)
	if o.Bool {
		buf[8] = 1
	}
	binary.LittleEndian.PutUint32(buf[12:16], uint32(o.Int))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(o.Float))
	binary.LittleEndian.PutUint32(buf[20:24], o.Ent)
	binary.LittleEndian.PutUint32(buf[24:28], o.Offset)
	binary.LittleEndian.PutUint32(buf[28:32], o.Length)
}

// decodeObject reads an Object from buf[:ObjectSize].
func decodeObject(buf []byte) object.Object {
	var o object.Object
	o.Tag = object.Type(buf[0])
	o.Access = object.Access(buf[1])
	o.Exec = buf[2] != 0
	o.BankOf = object.Bank(buf[3])
	o.Pad0 = binary.LittleEndian.Uint16(buf[4:6])
	o.Pad1 = binary.LittleEndian.Uint16(buf[6:8])
	o.Bool = buf[8] != 0
	o.Int = int32(binary.LittleEndian.Uint32(buf[12:16]))
	o.Float = math.Float32frombits(binary.LittleEndian.Uint32(buf[16:20]))
	o.Ent = binary.LittleEndian.Uint32(buf[20:24])
	o.Offset = binary.LittleEndian.Uint32(buf[24:28])
	o.Length = binary.LittleEndian.Uint32(buf[28:32])
	return o
}
