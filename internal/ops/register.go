// Package ops implements spec.md's built-in operators: every Func is a
// typed Signature registered into an optable.Table and bound, by name, into
// a freshly created Context's systemdict — the same two-step wiring the
// teacher's builtin packages use (register, then bind into the global
// environment) generalized from DWScript's function registry to
// PostScript's typed operator-overload table.
package ops

import (
	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/optable"
	"github.com/cwbudde/go-xpost/internal/pscontext"
	"github.com/cwbudde/go-xpost/internal/runtime"
)

// RegisterAll installs every operator category into t and binds each
// operator, plus the constants true/false/null, into ctx.SystemDict. It is
// the one function package xpost's Create calls while wiring up a fresh
// Context.
func RegisterAll(ctx *pscontext.Context, t *optable.Table) error {
	installStack(ctx, t)
	installMath(ctx, t)
	installCollections(ctx, t)
	installDict(ctx, t)
	installControl(ctx, t)
	installType(ctx, t)
	installMisc(ctx, t)
	installDevice(ctx, t)

	if err := bindConstant(ctx, "true", object.BoolObject(true)); err != nil {
		return err
	}
	if err := bindConstant(ctx, "false", object.BoolObject(false)); err != nil {
		return err
	}
	if err := bindConstant(ctx, "null", object.NullObject()); err != nil {
		return err
	}
	return nil
}

// reg registers op into t and binds its name, as an executable operator
// object, into ctx.SystemDict.
func reg(ctx *pscontext.Context, t *optable.Table, op optable.Operator) {
	opcode := t.Register(op)
	name := ctx.Names.ConsName(object.Global, op.Name)
	obj := object.OperatorObject(opcode)
	if err := runtime.DictPut(ctx.Files, ctx.SystemDict, name, obj); err != nil {
		// systemdict is sized generously (defaultDictCapacity) at Context
		// creation specifically so this can't happen during RegisterAll.
		panic("ops: systemdict full while registering " + op.Name + ": " + err.Error())
	}
}

func bindConstant(ctx *pscontext.Context, name string, v object.Object) error {
	key := ctx.Names.ConsName(object.Global, name)
	return runtime.DictPut(ctx.Files, ctx.SystemDict, key, v)
}

// sig is a small constructor to keep the Install* functions readable.
func sig(fn optable.Func, in ...optable.ParamType) optable.Signature {
	return optable.Signature{In: in, Fn: fn}
}
