package ops

import (
	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/optable"
	"github.com/cwbudde/go-xpost/internal/pscontext"
	"github.com/cwbudde/go-xpost/internal/pserrors"
	"github.com/cwbudde/go-xpost/internal/runtime"
)

// installStack wires the operand-stack shuffling operators (spec.md §8
// scenario 1's `add` depends on pop/push already working, the rest round
// out the family): pop, exch, dup, copy (stack form), index, roll, clear,
// count, mark, cleartomark, counttomark, and `]` (array from mark).
func installStack(ctx *pscontext.Context, t *optable.Table) {
	reg(ctx, t, optable.Operator{Name: "pop", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return nil, nil
		}, optable.Any),
	}})

	reg(ctx, t, optable.Operator{Name: "exch", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return []object.Object{a[1], a[0]}, nil
		}, optable.Any, optable.Any),
	}})

	reg(ctx, t, optable.Operator{Name: "dup", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return []object.Object{a[0], a[0]}, nil
		}, optable.Any),
	}})

	reg(ctx, t, optable.Operator{Name: "copy", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			n := int(a[0].Int)
			if n < 0 {
				return nil, pserrors.New(pserrors.RangeCheck, "copy: negative count")
			}
			top, ok := ctx.Operand.PeekN(n)
			if !ok {
				return nil, pserrors.StackUnderflow
			}
			return top, nil
		}, optable.TInteger),
		sig(copyComposite, optable.TArray, optable.TArray),
		sig(copyComposite, optable.TDict, optable.TDict),
		sig(copyComposite, optable.TString, optable.TString),
	}})

	reg(ctx, t, optable.Operator{Name: "index", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			n := int(a[0].Int)
			if n < 0 {
				return nil, pserrors.New(pserrors.RangeCheck, "index: negative")
			}
			peeked, ok := ctx.Operand.PeekN(n + 1)
			if !ok {
				return nil, pserrors.StackUnderflow
			}
			return []object.Object{peeked[0]}, nil
		}, optable.TInteger),
	}})

	reg(ctx, t, optable.Operator{Name: "roll", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			n := int(a[0].Int)
			j := int(a[1].Int)
			if n < 0 {
				return nil, pserrors.New(pserrors.RangeCheck, "roll: negative count")
			}
			if n == 0 {
				return nil, nil
			}
			items, ok := ctx.Operand.PeekN(n)
			if !ok {
				return nil, pserrors.StackUnderflow
			}
			ctx.Operand.TrimTo(ctx.Operand.Depth() - n)
			j = ((j % n) + n) % n
			rolled := make([]object.Object, n)
			for i := 0; i < n; i++ {
				rolled[(i+j)%n] = items[i]
			}
			for _, o := range rolled {
				ctx.Operand.Push(o)
			}
			return nil, nil
		}, optable.TInteger, optable.TInteger),
	}})

	reg(ctx, t, optable.Operator{Name: "clear", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			ctx.Operand.Clear()
			return nil, nil
		}),
	}})

	reg(ctx, t, optable.Operator{Name: "count", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return []object.Object{object.IntObject(int32(ctx.Operand.Depth()))}, nil
		}),
	}})

	reg(ctx, t, optable.Operator{Name: "mark", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return []object.Object{object.MarkObject()}, nil
		}),
	}})

	reg(ctx, t, optable.Operator{Name: "cleartomark", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return nil, popToMark(ctx)
		}),
	}})

	reg(ctx, t, optable.Operator{Name: "counttomark", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			n, err := countToMark(ctx)
			if err != nil {
				return nil, err
			}
			return []object.Object{object.IntObject(int32(n))}, nil
		}),
	}})

	reg(ctx, t, optable.Operator{Name: "]", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			n, err := countToMark(ctx)
			if err != nil {
				return nil, err
			}
			elems, _ := ctx.Operand.PeekN(n)
			arr, err := runtime.ArrayFromElements(ctx.Files, object.Local, elems)
			if err != nil {
				return nil, err
			}
			ctx.Operand.TrimTo(ctx.Operand.Depth() - n - 1)
			return []object.Object{arr}, nil
		}),
	}})
}

// copyComposite implements the array/dict/string form of `copy`: copy the
// contents of the source composite into the already-allocated destination,
// per spec.md's array/dict/string semantics ("Put is amortized O(1)").
func copyComposite(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
	src, dst := a[0], a[1]
	switch src.Tag {
	case object.Array:
		elems, err := runtime.ArrayElements(ctx.Files, src)
		if err != nil {
			return nil, err
		}
		if runtime.ArrayLength(dst) < len(elems) {
			return nil, pserrors.RangeCheck
		}
		for i, e := range elems {
			if err := runtime.ArrayPut(ctx.Files, dst, i, e); err != nil {
				return nil, err
			}
		}
		sub, err := runtime.Subarray(dst, 0, len(elems))
		if err != nil {
			return nil, err
		}
		return []object.Object{sub}, nil
	case object.String:
		b, err := runtime.StringBytes(ctx.Files, src)
		if err != nil {
			return nil, err
		}
		if runtime.StringLength(dst) < len(b) {
			return nil, pserrors.RangeCheck
		}
		if err := runtime.StringPutBytes(ctx.Files, dst, 0, b); err != nil {
			return nil, err
		}
		sub, err := runtime.Substring(dst, 0, len(b))
		if err != nil {
			return nil, err
		}
		return []object.Object{sub}, nil
	case object.Dict:
		err := runtime.DictEach(ctx.Files, src, func(k, v object.Object) error {
			return runtime.DictPut(ctx.Files, dst, k, v)
		})
		if err != nil {
			return nil, err
		}
		return []object.Object{dst}, nil
	default:
		return nil, pserrors.TypeCheck
	}
}

// popToMark discards operand-stack entries down through and including the
// topmost mark.
func popToMark(ctx *pscontext.Context) error {
	for {
		o, ok := ctx.Operand.Pop()
		if !ok {
			return pserrors.UnmatchedMark
		}
		if o.Tag == object.Mark {
			return nil
		}
	}
}

// countToMark returns the number of entries above the topmost mark, without
// popping them.
func countToMark(ctx *pscontext.Context) (int, error) {
	all := ctx.Operand.All()
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Tag == object.Mark {
			return len(all) - 1 - i, nil
		}
	}
	return 0, pserrors.UnmatchedMark
}
