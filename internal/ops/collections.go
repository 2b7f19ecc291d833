package ops

import (
	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/optable"
	"github.com/cwbudde/go-xpost/internal/pscontext"
	"github.com/cwbudde/go-xpost/internal/pserrors"
	"github.com/cwbudde/go-xpost/internal/runtime"
)

// installCollections wires the operators shared by array, dict and string
// (spec.md §8 scenario 4: `(hello) length` → 5): length, get, put,
// getinterval, putinterval, forall, and the array/string constructor pair
// "array"/"string".
func installCollections(ctx *pscontext.Context, t *optable.Table) {
	reg(ctx, t, optable.Operator{Name: "length", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return []object.Object{object.IntObject(int32(runtime.ArrayLength(a[0])))}, nil
		}, optable.TArray),
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return []object.Object{object.IntObject(int32(runtime.StringLength(a[0])))}, nil
		}, optable.TString),
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			n, err := runtime.DictLength(ctx.Files, a[0])
			if err != nil {
				return nil, err
			}
			return []object.Object{object.IntObject(int32(n))}, nil
		}, optable.TDict),
	}})

	reg(ctx, t, optable.Operator{Name: "maxlength", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			n, err := runtime.DictCapacity(ctx.Files, a[0])
			if err != nil {
				return nil, err
			}
			return []object.Object{object.IntObject(int32(n))}, nil
		}, optable.TDict),
	}})

	reg(ctx, t, optable.Operator{Name: "get", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			v, err := runtime.ArrayGet(ctx.Files, a[0], int(a[1].Int))
			if err != nil {
				return nil, pserrors.RangeCheck
			}
			return []object.Object{v}, nil
		}, optable.TArray, optable.TInteger),
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			b, err := runtime.StringBytes(ctx.Files, a[0])
			if err != nil {
				return nil, err
			}
			i := int(a[1].Int)
			if i < 0 || i >= len(b) {
				return nil, pserrors.RangeCheck
			}
			return []object.Object{object.IntObject(int32(b[i]))}, nil
		}, optable.TString, optable.TInteger),
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			v, err := runtime.DictGet(ctx.Files, a[0], a[1])
			if err != nil {
				return nil, err
			}
			known, err := runtime.DictKnown(ctx.Files, a[0], a[1])
			if err != nil {
				return nil, err
			}
			if !known {
				return nil, pserrors.Undefined
			}
			return []object.Object{v}, nil
		}, optable.TDict, optable.Any),
	}})

	reg(ctx, t, optable.Operator{Name: "put", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			if err := runtime.ArrayPut(ctx.Files, a[0], int(a[1].Int), a[2]); err != nil {
				return nil, pserrors.RangeCheck
			}
			return nil, nil
		}, optable.TArray, optable.TInteger, optable.Any),
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			if a[2].Tag != object.Integer {
				return nil, pserrors.TypeCheck
			}
			if err := runtime.StringPutBytes(ctx.Files, a[0], int(a[1].Int), []byte{byte(a[2].Int)}); err != nil {
				return nil, pserrors.RangeCheck
			}
			return nil, nil
		}, optable.TString, optable.TInteger, optable.Any),
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return nil, runtime.DictPut(ctx.Files, a[0], a[1], a[2])
		}, optable.TDict, optable.Any, optable.Any),
	}})

	reg(ctx, t, optable.Operator{Name: "getinterval", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			sub, err := runtime.Subarray(a[0], int(a[1].Int), int(a[2].Int))
			if err != nil {
				return nil, pserrors.RangeCheck
			}
			return []object.Object{sub}, nil
		}, optable.TArray, optable.TInteger, optable.TInteger),
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			sub, err := runtime.Substring(a[0], int(a[1].Int), int(a[2].Int))
			if err != nil {
				return nil, pserrors.RangeCheck
			}
			return []object.Object{sub}, nil
		}, optable.TString, optable.TInteger, optable.TInteger),
	}})

	reg(ctx, t, optable.Operator{Name: "putinterval", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			elems, err := runtime.ArrayElements(ctx.Files, a[2])
			if err != nil {
				return nil, err
			}
			start := int(a[1].Int)
			for i, e := range elems {
				if err := runtime.ArrayPut(ctx.Files, a[0], start+i, e); err != nil {
					return nil, pserrors.RangeCheck
				}
			}
			return nil, nil
		}, optable.TArray, optable.TInteger, optable.TArray),
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			b, err := runtime.StringBytes(ctx.Files, a[2])
			if err != nil {
				return nil, err
			}
			if err := runtime.StringPutBytes(ctx.Files, a[0], int(a[1].Int), b); err != nil {
				return nil, pserrors.RangeCheck
			}
			return nil, nil
		}, optable.TString, optable.TInteger, optable.TString),
	}})

	reg(ctx, t, optable.Operator{Name: "forall", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			elems, err := runtime.ArrayElements(ctx.Files, a[0])
			if err != nil {
				return nil, err
			}
			for _, e := range elems {
				ctx.Operand.Push(e)
				if err := ctx.Runner.RunProc(ctx, a[1]); err != nil {
					return nil, err
				}
				if ctx.ConsumeExit() || ctx.StopPending() {
					break
				}
			}
			return nil, nil
		}, optable.TArray, optable.Proc),
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			b, err := runtime.StringBytes(ctx.Files, a[0])
			if err != nil {
				return nil, err
			}
			for _, c := range b {
				ctx.Operand.Push(object.IntObject(int32(c)))
				if err := ctx.Runner.RunProc(ctx, a[1]); err != nil {
					return nil, err
				}
				if ctx.ConsumeExit() || ctx.StopPending() {
					break
				}
			}
			return nil, nil
		}, optable.TString, optable.Proc),
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			var forErr error
			err := runtime.DictEach(ctx.Files, a[0], func(k, v object.Object) error {
				ctx.Operand.Push(k)
				ctx.Operand.Push(v)
				if err := ctx.Runner.RunProc(ctx, a[1]); err != nil {
					forErr = err
					return err
				}
				return nil
			})
			if forErr != nil {
				return nil, forErr
			}
			return nil, err
		}, optable.TDict, optable.Proc),
	}})

	reg(ctx, t, optable.Operator{Name: "array", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			n := int(a[0].Int)
			if n < 0 {
				return nil, pserrors.RangeCheck
			}
			arr, err := runtime.NewArray(ctx.Files, object.Local, n)
			if err != nil {
				return nil, err
			}
			return []object.Object{arr}, nil
		}, optable.TInteger),
	}})

	reg(ctx, t, optable.Operator{Name: "string", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			n := int(a[0].Int)
			if n < 0 {
				return nil, pserrors.RangeCheck
			}
			s, err := runtime.NewString(ctx.Files, object.Local, n, nil)
			if err != nil {
				return nil, err
			}
			return []object.Object{s}, nil
		}, optable.TInteger),
	}})
}
