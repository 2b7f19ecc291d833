package optable

import (
	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/pscontext"
	"github.com/cwbudde/go-xpost/internal/pserrors"
)

// Dispatch implements spec.md §4.5's five-step algorithm for an operator
// Object (carrying opcode) at the head of the execution stack:
//
//  1. look up the operator, determine the largest input arity any
//     signature declares;
//  2. try each signature in registration order, picking the first whose
//     declared input types all match;
//  3. pop the matched arity, invoke its Func;
//  4. on error, restore the operand stack and signal through pserrors;
//  5. if nothing matched: stackunderflow if even the smallest signature's
//     arity isn't available, else typecheck.
//
// Dispatch itself never returns a bare PostScript error: those are fully
// handled by pushing the errordict handler (pserrors.Signal) so the
// execution loop simply continues. A non-nil return here means a fatal,
// unrecoverable failure (e.g. Context already Aborted, or $error itself
// could not be populated).
func Dispatch(t *Table, ctx *pscontext.Context, opcode uint32, opObj object.Object) error {
	op, ok := t.Operator(opcode)
	if !ok {
		return pserrors.Signal(ctx, pserrors.New(pserrors.Unregistered, "opcode %d not registered", opcode), opObj)
	}

	minArity := -1
	for _, sig := range op.Signatures {
		if minArity < 0 || len(sig.In) < minArity {
			minArity = len(sig.In)
		}
	}
	if minArity < 0 {
		minArity = 0
	}
	if ctx.Operand.Depth() < minArity {
		return pserrors.Signal(ctx, pserrors.StackUnderflow, opObj)
	}

	var selected *Signature
	var selectedArgs []object.Object
	for i := range op.Signatures {
		sig := &op.Signatures[i]
		n := len(sig.In)
		peeked, ok := ctx.Operand.PeekN(n)
		if !ok {
			continue
		}
		allMatch := true
		for j, pt := range sig.In {
			if !matches(pt, peeked[j]) {
				allMatch = false
				break
			}
		}
		if allMatch {
			selected = sig
			selectedArgs = peeked
			break
		}
	}

	if selected == nil {
		return pserrors.Signal(ctx, pserrors.New(pserrors.TypeCheck, "no signature of %s matches operand types", op.Name), opObj)
	}

	preDepth := ctx.Operand.Depth()
	n := len(selected.In)
	for i := 0; i < n; i++ {
		ctx.Operand.Pop()
	}
	args := make([]object.Object, n)
	for i, pt := range selected.In {
		args[i] = coerce(pt, selectedArgs[i])
	}

	results, err := selected.Fn(ctx, args)
	if err != nil {
		ctx.Operand.TrimTo(preDepth - n)
		for _, a := range selectedArgs {
			ctx.Operand.Push(a)
		}
		return pserrors.Signal(ctx, err, opObj)
	}
	for _, r := range results {
		ctx.Operand.Push(r)
	}
	return nil
}
