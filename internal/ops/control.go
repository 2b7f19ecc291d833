package ops

import (
	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/optable"
	"github.com/cwbudde/go-xpost/internal/pscontext"
)

// installControl wires the control-flow operators (spec.md §4.6, §9):
// exec, if, ifelse, for, repeat, loop, exit, stop, stopped. exec pushes its
// operand onto the execution stack; exit and stop only set a request flag.
// The others drive their procedure operand(s) to completion via ctx.Runner
// (set by package xpost once the execution loop exists) — the one place
// this interpreter trades strict
// continuation-passing for a bounded amount of native Go recursion, one
// call per nesting level of control construct (see internal/exec.RunProc).
func installControl(ctx *pscontext.Context, t *optable.Table) {
	reg(ctx, t, optable.Operator{Name: "exec", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			ctx.Execution.Push(a[0])
			return nil, nil
		}, optable.Any),
	}})

	reg(ctx, t, optable.Operator{Name: "if", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			if a[0].Bool {
				return nil, ctx.Runner.RunProc(ctx, a[1])
			}
			return nil, nil
		}, optable.TBoolean, optable.Proc),
	}})

	reg(ctx, t, optable.Operator{Name: "ifelse", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			if a[0].Bool {
				return nil, ctx.Runner.RunProc(ctx, a[1])
			}
			return nil, ctx.Runner.RunProc(ctx, a[2])
		}, optable.TBoolean, optable.Proc, optable.Proc),
	}})

	reg(ctx, t, optable.Operator{Name: "repeat", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			n := int(a[0].Int)
			for i := 0; i < n; i++ {
				if err := ctx.Runner.RunProc(ctx, a[1]); err != nil {
					return nil, err
				}
				if ctx.ConsumeExit() || ctx.StopPending() {
					break
				}
			}
			return nil, nil
		}, optable.TInteger, optable.Proc),
	}})

	reg(ctx, t, optable.Operator{Name: "loop", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			for {
				if err := ctx.Runner.RunProc(ctx, a[0]); err != nil {
					return nil, err
				}
				if ctx.ConsumeExit() || ctx.StopPending() {
					break
				}
			}
			return nil, nil
		}, optable.Proc),
	}})

	reg(ctx, t, optable.Operator{Name: "for", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			init, incr, limit := a[0].AsFloat(), a[1].AsFloat(), a[2].AsFloat()
			proc := a[3]
			allInt := a[0].Tag == object.Integer && a[1].Tag == object.Integer && a[2].Tag == object.Integer
			if incr == 0 {
				return nil, nil
			}
			for v := init; (incr > 0 && v <= limit) || (incr < 0 && v >= limit); v += incr {
				if allInt {
					ctx.Operand.Push(object.IntObject(int32(v)))
				} else {
					ctx.Operand.Push(object.RealObject(v))
				}
				if err := ctx.Runner.RunProc(ctx, proc); err != nil {
					return nil, err
				}
				if ctx.ConsumeExit() || ctx.StopPending() {
					break
				}
			}
			return nil, nil
		}, optable.Number, optable.Number, optable.Number, optable.Proc),
	}})

	reg(ctx, t, optable.Operator{Name: "exit", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			ctx.RequestExit()
			return nil, nil
		}),
	}})

	reg(ctx, t, optable.Operator{Name: "stop", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			ctx.RequestStop()
			return nil, nil
		}),
	}})

	reg(ctx, t, optable.Operator{Name: "stopped", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			if err := ctx.Runner.RunProc(ctx, a[0]); err != nil {
				return nil, err
			}
			stopped := ctx.ConsumeStop()
			return []object.Object{object.BoolObject(stopped)}, nil
		}, optable.Proc),
	}})
}
