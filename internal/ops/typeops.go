package ops

import (
	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/optable"
	"github.com/cwbudde/go-xpost/internal/pscontext"
	"github.com/cwbudde/go-xpost/internal/pserrors"
)

// installType wires type-inspection/conversion and the comparison/boolean
// operators (spec.md §4.2 equality, §8's typecheck/undefined error
// scenario): type, cvi, cvr, cvx, cvlit, xcheck, eq, ne, gt, ge, lt, le,
// and, or, not, xor.
func installType(ctx *pscontext.Context, t *optable.Table) {
	reg(ctx, t, optable.Operator{Name: "type", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return []object.Object{ctx.Names.ConsName(object.Global, a[0].Tag.String())}, nil
		}, optable.Any),
	}})

	reg(ctx, t, optable.Operator{Name: "cvi", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return []object.Object{object.IntObject(int32(a[0].AsFloat()))}, nil
		}, optable.Number),
	}})

	reg(ctx, t, optable.Operator{Name: "cvr", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return []object.Object{object.RealObject(a[0].AsFloat())}, nil
		}, optable.Number),
	}})

	reg(ctx, t, optable.Operator{Name: "cvx", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return []object.Object{a[0].SetExecutable(true)}, nil
		}, optable.Any),
	}})

	reg(ctx, t, optable.Operator{Name: "cvlit", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return []object.Object{a[0].SetExecutable(false)}, nil
		}, optable.Any),
	}})

	reg(ctx, t, optable.Operator{Name: "xcheck", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return []object.Object{object.BoolObject(a[0].IsExecutable())}, nil
		}, optable.Any),
	}})

	reg(ctx, t, optable.Operator{Name: "eq", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return []object.Object{object.BoolObject(object.Equal(a[0], a[1]))}, nil
		}, optable.Any, optable.Any),
	}})

	reg(ctx, t, optable.Operator{Name: "ne", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return []object.Object{object.BoolObject(!object.Equal(a[0], a[1]))}, nil
		}, optable.Any, optable.Any),
	}})

	cmp := func(name string, fn func(a, b float32) bool) {
		reg(ctx, t, optable.Operator{Name: name, Signatures: []optable.Signature{
			sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
				return []object.Object{object.BoolObject(fn(a[0].AsFloat(), a[1].AsFloat()))}, nil
			}, optable.Number, optable.Number),
		}})
	}
	cmp("gt", func(a, b float32) bool { return a > b })
	cmp("ge", func(a, b float32) bool { return a >= b })
	cmp("lt", func(a, b float32) bool { return a < b })
	cmp("le", func(a, b float32) bool { return a <= b })

	reg(ctx, t, optable.Operator{Name: "not", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return []object.Object{object.BoolObject(!a[0].Bool)}, nil
		}, optable.TBoolean),
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return []object.Object{object.IntObject(^a[0].Int)}, nil
		}, optable.TInteger),
	}})

	boolOrInt := func(name string, boolFn func(a, b bool) bool, intFn func(a, b int32) int32) {
		reg(ctx, t, optable.Operator{Name: name, Signatures: []optable.Signature{
			sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
				return []object.Object{object.BoolObject(boolFn(a[0].Bool, a[1].Bool))}, nil
			}, optable.TBoolean, optable.TBoolean),
			sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
				return []object.Object{object.IntObject(intFn(a[0].Int, a[1].Int))}, nil
			}, optable.TInteger, optable.TInteger),
		}})
	}
	boolOrInt("and", func(a, b bool) bool { return a && b }, func(a, b int32) int32 { return a & b })
	boolOrInt("or", func(a, b bool) bool { return a || b }, func(a, b int32) int32 { return a | b })
	boolOrInt("xor", func(a, b bool) bool { return a != b }, func(a, b int32) int32 { return a ^ b })

	reg(ctx, t, optable.Operator{Name: "cvn", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			b, err := stringBytes(ctx, a[0])
			if err != nil {
				return nil, err
			}
			return []object.Object{ctx.Names.ConsName(object.Global, string(b))}, nil
		}, optable.TString),
	}})

	reg(ctx, t, optable.Operator{Name: "cvs", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			text := formatOperand(ctx, a[0])
			dst := a[1]
			if len(text) > int(dst.Length) {
				return nil, pserrors.RangeCheck
			}
			if err := putStringBytes(ctx, dst, 0, []byte(text)); err != nil {
				return nil, err
			}
			sub, err := substring(dst, 0, len(text))
			if err != nil {
				return nil, err
			}
			return []object.Object{sub}, nil
		}, optable.Any, optable.TString),
	}})
}
