package ops

import (
	"math"

	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/optable"
	"github.com/cwbudde/go-xpost/internal/pscontext"
	"github.com/cwbudde/go-xpost/internal/pserrors"
)

// installMath wires the arithmetic operators (spec.md §8 scenarios 1-2:
// `1 2 add` → 3, `1.5 2 add` → 3.5). add, sub and mul register an exact
// integer-integer signature first and a coerced-to-real fallback second,
// mirroring the way PostScript numbers silently promote; div always yields
// a real, and idiv and mod accept integers only.
func installMath(ctx *pscontext.Context, t *optable.Table) {
	binIntReal(ctx, t, "add",
		func(a, b int32) int32 { return a + b },
		func(a, b float32) float32 { return a + b })
	binIntReal(ctx, t, "sub",
		func(a, b int32) int32 { return a - b },
		func(a, b float32) float32 { return a - b })
	binIntReal(ctx, t, "mul",
		func(a, b int32) int32 { return a * b },
		func(a, b float32) float32 { return a * b })

	reg(ctx, t, optable.Operator{Name: "div", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			if a[1].AsFloat() == 0 {
				return nil, pserrors.UndefinedResult
			}
			return []object.Object{object.RealObject(a[0].AsFloat() / a[1].AsFloat())}, nil
		}, optable.Number, optable.Number),
	}})

	reg(ctx, t, optable.Operator{Name: "idiv", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			if a[1].Int == 0 {
				return nil, pserrors.UndefinedResult
			}
			return []object.Object{object.IntObject(a[0].Int / a[1].Int)}, nil
		}, optable.TInteger, optable.TInteger),
	}})

	reg(ctx, t, optable.Operator{Name: "mod", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			if a[1].Int == 0 {
				return nil, pserrors.UndefinedResult
			}
			return []object.Object{object.IntObject(a[0].Int % a[1].Int)}, nil
		}, optable.TInteger, optable.TInteger),
	}})

	reg(ctx, t, optable.Operator{Name: "neg", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return []object.Object{object.IntObject(-a[0].Int)}, nil
		}, optable.TInteger),
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return []object.Object{object.RealObject(-a[0].Float)}, nil
		}, optable.TReal),
	}})

	reg(ctx, t, optable.Operator{Name: "abs", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			v := a[0].Int
			if v < 0 {
				v = -v
			}
			return []object.Object{object.IntObject(v)}, nil
		}, optable.TInteger),
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return []object.Object{object.RealObject(float32(math.Abs(float64(a[0].Float))))}, nil
		}, optable.TReal),
	}})

	unaryReal(ctx, t, "sqrt", func(f float64) float64 { return math.Sqrt(f) })
	unaryReal(ctx, t, "sin", func(f float64) float64 { return math.Sin(f * math.Pi / 180) })
	unaryReal(ctx, t, "cos", func(f float64) float64 { return math.Cos(f * math.Pi / 180) })
	unaryReal(ctx, t, "ln", func(f float64) float64 { return math.Log(f) })
	unaryReal(ctx, t, "log", func(f float64) float64 { return math.Log10(f) })
	unaryReal(ctx, t, "ceiling", func(f float64) float64 { return math.Ceil(f) })
	unaryReal(ctx, t, "floor", func(f float64) float64 { return math.Floor(f) })
	unaryReal(ctx, t, "round", func(f float64) float64 { return math.Round(f) })
	unaryReal(ctx, t, "truncate", func(f float64) float64 { return math.Trunc(f) })
}

func binIntReal(ctx *pscontext.Context, t *optable.Table, name string, intFn func(a, b int32) int32, realFn func(a, b float32) float32) {
	reg(ctx, t, optable.Operator{Name: name, Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return []object.Object{object.IntObject(intFn(a[0].Int, a[1].Int))}, nil
		}, optable.TInteger, optable.TInteger),
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return []object.Object{object.RealObject(realFn(a[0].AsFloat(), a[1].AsFloat()))}, nil
		}, optable.Float, optable.Float),
	}})
}

func unaryReal(ctx *pscontext.Context, t *optable.Table, name string, fn func(float64) float64) {
	reg(ctx, t, optable.Operator{Name: name, Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return []object.Object{object.RealObject(float32(fn(float64(a[0].AsFloat()))))}, nil
		}, optable.Float),
	}})
}
