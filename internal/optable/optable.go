// Package optable implements the operator table and dispatch algorithm
// (spec.md §4.5): operators are registered with one or more typed
// signatures, and dispatch selects the first signature whose declared
// input types match the operand stack.
package optable

import (
	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/pscontext"
)

// ParamType is a signature's declared operand type, including the typepat
// extensions spec.md §4.5 names: anytype, numbertype, floattype, proctype.
type ParamType int

const (
	Any ParamType = iota
	Number                    // integer ∪ real
	Float                     // as Number, but integer operands are coerced to real
	Proc                      // executable array
	TNull
	TMark
	TBoolean
	TInteger
	TReal
	TOperator
	TSave
	TName
	TString
	TArray
	TDict
	TFile
	TFileType
)

// Func is a native operator body. It receives the already-popped operands
// (in signature order, bottom of stack first) and returns the values to
// push back, or an error — conventionally a pserrors.Name — on failure
// (spec.md §4.5 step 3: "returns an integer: 0 = success, nonzero = error
// code", translated into Go's (result, error) idiom).
type Func func(ctx *pscontext.Context, args []object.Object) ([]object.Object, error)

// Signature is one typed overload of an operator (spec.md §4.5).
type Signature struct {
	In   []ParamType
	Fn   Func
	Name string // optional label; Dispatch does not read it and diagnostics use the Operator's Name
}

// Operator is a registered native operation: a name plus the signatures
// tried, in registration order, at dispatch time.
type Operator struct {
	Name       string
	Signatures []Signature
}

// Table is the interpreter's operator table: Register appends an Operator
// and returns its opcode (the table index), small enough to fit in an
// Object's Ent field the way spec.md §4.5 describes stashing it in padw.
type Table struct {
	ops []Operator
}

// NewTable returns an empty operator table.
func NewTable() *Table { return &Table{} }

// Register appends op and returns its opcode.
func (t *Table) Register(op Operator) uint32 {
	opcode := uint32(len(t.ops))
	t.ops = append(t.ops, op)
	return opcode
}

// Operator returns the registered Operator for opcode.
func (t *Table) Operator(opcode uint32) (Operator, bool) {
	if int(opcode) >= len(t.ops) {
		return Operator{}, false
	}
	return t.ops[opcode], true
}

// Len returns the number of registered operators.
func (t *Table) Len() int { return len(t.ops) }

// matches reports whether obj satisfies pt, per spec.md §4.5's matching
// rules (anytype matches anything; numbertype = integer∪real; floattype
// additionally requires the caller to coerce; proctype = executable array).
func matches(pt ParamType, o object.Object) bool {
	switch pt {
	case Any:
		return true
	case Number, Float:
		return o.IsNumber()
	case Proc:
		return o.Tag == object.Array && o.Exec
	case TNull:
		return o.Tag == object.Null
	case TMark:
		return o.Tag == object.Mark
	case TBoolean:
		return o.Tag == object.Boolean
	case TInteger:
		return o.Tag == object.Integer
	case TReal:
		return o.Tag == object.Real
	case TOperator:
		return o.Tag == object.Operator
	case TSave:
		return o.Tag == object.Save
	case TName:
		return o.Tag == object.Name
	case TString:
		return o.Tag == object.String
	case TArray:
		return o.Tag == object.Array
	case TDict:
		return o.Tag == object.Dict
	case TFile:
		return o.Tag == object.File
	case TFileType:
		return o.Tag == object.FileType
	default:
		return false
	}
}

// coerce applies floattype's integer→real coercion (spec.md §4.5).
func coerce(pt ParamType, o object.Object) object.Object {
	if pt == Float && o.Tag == object.Integer {
		return object.RealObject(float32(o.Int))
	}
	return o
}
