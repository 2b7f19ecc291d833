// Package exec implements the interpreter's execution loop (spec.md §4.6):
// a continuation-passing drive over the execution stack, with no native
// recursion for procedure or file bodies; only control operators that go
// through RunProc spend a Go call frame per nesting level.
package exec

import (
	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/optable"
	"github.com/cwbudde/go-xpost/internal/pscontext"
	"github.com/cwbudde/go-xpost/internal/pserrors"
	"github.com/cwbudde/go-xpost/internal/runtime"
	"github.com/cwbudde/go-xpost/internal/scanner"
)

// Loop drives a Context's execution stack against a shared operator table.
type Loop struct {
	Table *optable.Table
}

// New returns a Loop bound to t.
func New(t *optable.Table) *Loop {
	return &Loop{Table: t}
}

// Step performs one classification-and-dispatch cycle on the top of the
// execution stack (spec.md §4.6's five cases). It reports false when the
// execution stack is empty (nothing left to do) or the Context has been
// Aborted/is Quitting.
func (l *Loop) Step(ctx *pscontext.Context) (bool, error) {
	if ctx.Aborted || ctx.Quitting || ctx.Yielded {
		return false, nil
	}
	if ctx.InterruptPending() {
		if serr := pserrors.Signal(ctx, pserrors.Interrupt, object.Object{}); serr != nil {
			return false, serr
		}
		return true, nil
	}

	top, ok := ctx.Execution.Pop()
	if !ok {
		return false, nil
	}

	switch {
	case top.Tag == object.Array && top.Exec:
		// Only a genuinely invoked procedure ever reaches the execution
		// stack as an executable array — stepName's bound-procedure path,
		// RunProc, or an operator that explicitly transfers one from the
		// operand stack (exec, if, for, ...). A procedure literal freshly
		// scanned from source or a file is routed to the operand stack
		// instead (see stepFile), so unrolling here is always a real call.
		return true, l.stepProcedure(ctx, top)
	case top.Tag == object.Name && top.Exec:
		return true, l.stepName(ctx, top)
	case top.Tag == object.Operator && top.Exec:
		return true, optable.Dispatch(l.Table, ctx, top.Ent, top)
	case top.Tag == object.File && top.Exec:
		return true, l.stepFile(ctx, top)
	default:
		// Literal object: every other case (including non-executable names,
		// which act as literals once pushed) is pushed straight to the operand
		// stack (spec.md §4.6 case 1).
		ctx.Operand.Push(top)
		return true, nil
	}
}

// RunProc implements pscontext.Runner: it pushes proc and steps until the
// execution stack unwinds back to its pre-call depth, so control operators
// (if/ifelse/for/repeat/loop/stopped, internal/ops) can invoke a procedure
// body and resume once it's fully done. Each PostScript-level step inside
// proc still goes through Step with no native recursion, but one Go call
// frame is spent per nesting level of control construct (a `for` inside a
// `for` costs two native frames) — the loop's one deliberate departure from
// strict continuation-passing (spec.md §9), justified in DESIGN.md.
func (l *Loop) RunProc(ctx *pscontext.Context, proc object.Object) error {
	base := ctx.Execution.Depth()
	ctx.Execution.Push(proc)
	for ctx.Execution.Depth() > base {
		more, err := l.Step(ctx)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		if ctx.StopPending() {
			ctx.Execution.TrimTo(base)
			return nil
		}
		if ctx.ConsumeExit() {
			// Leave the request pending for the enclosing loop operator.
			ctx.RequestExit()
			ctx.Execution.TrimTo(base)
			return nil
		}
	}
	return nil
}

// Run steps the loop until it has nothing left to do or hits a fatal error.
func (l *Loop) Run(ctx *pscontext.Context) error {
	for {
		more, err := l.Step(ctx)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// stepProcedure unrolls one element of an executable array at a time: it
// pushes the remainder back first, then the head, so the head executes next
// and the remainder resumes afterward — without ever unrolling the whole
// array or recursing natively (spec.md §4.6 case 3, §9 continuation style).
func (l *Loop) stepProcedure(ctx *pscontext.Context, a object.Object) error {
	n := runtime.ArrayLength(a)
	if n == 0 {
		return nil
	}
	head, err := runtime.ArrayGet(ctx.Files, a, 0)
	if err != nil {
		return pserrors.Signal(ctx, err, a)
	}
	if n > 1 {
		rest, err := runtime.Subarray(a, 1, n-1)
		if err != nil {
			return pserrors.Signal(ctx, err, a)
		}
		ctx.Execution.Push(rest.SetExecutable(true))
	}
	ctx.Execution.Push(head)
	return nil
}

// stepName resolves an executable name against the dictionary stack (spec.md
// §4.6 case 2). A procedure or operator binding is pushed back onto the
// execution stack so it runs on the next Step; any other value is pushed
// straight to the operand stack (binding a name to, say, an integer and
// invoking it just pushes that integer, exactly like a literal).
func (l *Loop) stepName(ctx *pscontext.Context, name object.Object) error {
	val, found, err := ctx.Lookup(name)
	if err != nil {
		return pserrors.Signal(ctx, err, name)
	}
	if !found {
		return pserrors.Signal(ctx, pserrors.Undefined, name)
	}
	if val.Exec && (val.Tag == object.Array || val.Tag == object.Operator || val.Tag == object.File) {
		ctx.Execution.Push(val)
		return nil
	}
	ctx.Operand.Push(val)
	return nil
}

// stepFile drip-feeds tokens from an executable file's backing bytes (spec.md
// §4.6 case 5): scan exactly one token, push the file back (continuation)
// below it so reading resumes after the token executes, and close the file
// once its scanner reaches EOF.
//
// A procedure literal read directly off the file's bytes is pushed to the
// operand stack, not the execution stack: per spec.md §4.5 (proctype
// operands are peeked off the operand stack by if/for/etc.), a `{ ... }`
// encountered by plain scanning is data until something explicitly invokes
// it — only a name/operator lookup (stepName) or an operator that transfers
// a popped operand onto the execution stack (exec, if, for, ...) actually
// runs a procedure.
func (l *Loop) stepFile(ctx *pscontext.Context, f object.Object) error {
	fs, ok := ctx.FileState(f)
	if !ok {
		return pserrors.Signal(ctx, pserrors.InvalidFileAccess, f)
	}
	sc := scanner.New(string(fs.Data[fs.Pos:]))
	tok, ok, err := sc.Next(ctx)
	if err != nil {
		return pserrors.Signal(ctx, err, f)
	}
	fs.Pos += sc.Pos()
	if !ok {
		ctx.CloseFile(f)
		return nil
	}
	ctx.Execution.Push(f)
	if tok.Tag == object.Array && tok.Exec {
		ctx.Operand.Push(tok)
		return nil
	}
	ctx.Execution.Push(tok)
	return nil
}
