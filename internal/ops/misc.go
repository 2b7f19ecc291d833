package ops

import (
	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/optable"
	"github.com/cwbudde/go-xpost/internal/pscontext"
	"github.com/cwbudde/go-xpost/internal/pserrors"
	"github.com/cwbudde/go-xpost/internal/runtime"
)

// installMisc wires save/restore (spec.md §4.7) and the handful of
// process-control operators (quit, bind) that don't fit any other category.
func installMisc(ctx *pscontext.Context, t *optable.Table) {
	reg(ctx, t, optable.Operator{Name: "save", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			return []object.Object{object.SaveObject(ctx.Save())}, nil
		}),
	}})

	reg(ctx, t, optable.Operator{Name: "restore", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			if err := ctx.Restore(a[0].Int); err != nil {
				return nil, pserrors.InvalidRestore
			}
			return nil, nil
		}, optable.TSave),
	}})

	reg(ctx, t, optable.Operator{Name: "quit", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			ctx.Quitting = true
			return nil, nil
		}),
	}})

	reg(ctx, t, optable.Operator{Name: "bind", Signatures: []optable.Signature{
		sig(bindProc, optable.Proc),
	}})
}

// bindProc resolves every executable name inside proc against the current
// dictionary stack once, replacing names bound to operators with the
// operator object directly (spec.md §4.6: the usual `bind` optimization, so
// later execution skips re-resolving a name that can only ever mean one
// operator). Names that resolve to anything other than an operator, or that
// aren't currently bound, are left untouched — `bind` never raises
// `undefined` for a forward reference.
func bindProc(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
	proc := a[0]
	elems, err := runtime.ArrayElements(ctx.Files, proc)
	if err != nil {
		return nil, err
	}
	changed := false
	for i, e := range elems {
		if e.Tag == object.Array && e.Exec {
			if _, err := bindProc(ctx, []object.Object{e}); err != nil {
				return nil, err
			}
			continue
		}
		if e.Tag != object.Name || !e.Exec {
			continue
		}
		v, found, err := ctx.Lookup(e)
		if err != nil {
			return nil, err
		}
		if found && v.Tag == object.Operator {
			elems[i] = v
			changed = true
		}
	}
	if changed {
		for i, e := range elems {
			if err := runtime.ArrayPut(ctx.Files, proc, i, e); err != nil {
				return nil, err
			}
		}
	}
	return []object.Object{proc}, nil
}
