package ops

import (
	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/optable"
	"github.com/cwbudde/go-xpost/internal/pscontext"
	"github.com/cwbudde/go-xpost/internal/pserrors"
	"github.com/cwbudde/go-xpost/internal/runtime"
)

// installDict wires the dictionary-stack operators (spec.md §8 scenario 3:
// `/x 42 def x` → 42): dict (constructor), begin, end, def, load, store,
// known, currentdict.
func installDict(ctx *pscontext.Context, t *optable.Table) {
	reg(ctx, t, optable.Operator{Name: "dict", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			n := int(a[0].Int)
			if n < 0 {
				return nil, pserrors.RangeCheck
			}
			d, err := runtime.NewDict(ctx.Files, object.Local, n)
			if err != nil {
				return nil, err
			}
			return []object.Object{d}, nil
		}, optable.TInteger),
	}})

	reg(ctx, t, optable.Operator{Name: "begin", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			ctx.Dictionary.Push(a[0])
			return nil, nil
		}, optable.TDict),
	}})

	reg(ctx, t, optable.Operator{Name: "end", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			if ctx.Dictionary.Depth() <= 3 {
				// systemdict, globaldict, userdict always stay on the stack
				// (spec.md §3.5's "standard dictionaries bound at creation").
				return nil, pserrors.DictStackUnderflow
			}
			ctx.Dictionary.Pop()
			return nil, nil
		}),
	}})

	reg(ctx, t, optable.Operator{Name: "def", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			cur, _ := ctx.CurrentDict()
			return nil, runtime.DictPut(ctx.Files, cur, a[0], a[1])
		}, optable.Any, optable.Any),
	}})

	reg(ctx, t, optable.Operator{Name: "load", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			v, found, err := ctx.Lookup(a[0])
			if err != nil {
				return nil, err
			}
			if !found {
				return nil, pserrors.Undefined
			}
			return []object.Object{v}, nil
		}, optable.Any),
	}})

	reg(ctx, t, optable.Operator{Name: "store", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			frames := ctx.Dictionary.All()
			for i := len(frames) - 1; i >= 0; i-- {
				known, err := runtime.DictKnown(ctx.Files, frames[i], a[0])
				if err != nil {
					return nil, err
				}
				if known {
					return nil, runtime.DictPut(ctx.Files, frames[i], a[0], a[1])
				}
			}
			cur, _ := ctx.CurrentDict()
			return nil, runtime.DictPut(ctx.Files, cur, a[0], a[1])
		}, optable.Any, optable.Any),
	}})

	reg(ctx, t, optable.Operator{Name: "known", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			known, err := runtime.DictKnown(ctx.Files, a[0], a[1])
			if err != nil {
				return nil, err
			}
			return []object.Object{object.BoolObject(known)}, nil
		}, optable.TDict, optable.Any),
	}})

	reg(ctx, t, optable.Operator{Name: "currentdict", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			cur, _ := ctx.CurrentDict()
			return []object.Object{cur}, nil
		}),
	}})

	reg(ctx, t, optable.Operator{Name: "where", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			frames := ctx.Dictionary.All()
			for i := len(frames) - 1; i >= 0; i-- {
				known, err := runtime.DictKnown(ctx.Files, frames[i], a[0])
				if err != nil {
					return nil, err
				}
				if known {
					return []object.Object{frames[i], object.BoolObject(true)}, nil
				}
			}
			return []object.Object{object.BoolObject(false)}, nil
		}, optable.Any),
	}})
}
