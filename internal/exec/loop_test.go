package exec_test

import (
	"testing"

	"github.com/cwbudde/go-xpost/internal/exec"
	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/optable"
	"github.com/cwbudde/go-xpost/internal/ops"
	"github.com/cwbudde/go-xpost/internal/pscontext"
	"github.com/cwbudde/go-xpost/internal/runtime"
)

func newLoop(t *testing.T) (*pscontext.Context, *exec.Loop) {
	t.Helper()
	ctx, err := pscontext.New(1<<16, 1<<14)
	if err != nil {
		t.Fatalf("pscontext.New: %v", err)
	}
	table := optable.NewTable()
	if err := ops.RegisterAll(ctx, table); err != nil {
		t.Fatalf("RegisterAll: %v", err)
	}
	loop := exec.New(table)
	ctx.Runner = loop
	return ctx, loop
}

// run feeds src through the same path the embedding API's top-level driver
// uses: an executable file Object on the execution stack, drip-fed one
// token at a time by the loop itself (internal/exec's stepFile), so
// procedure literals land on the operand stack exactly as they would for a
// real program rather than being eagerly unrolled by the test harness.
func run(t *testing.T, ctx *pscontext.Context, loop *exec.Loop, src string) {
	t.Helper()
	f, err := ctx.OpenFile([]byte(src))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	ctx.Execution.Push(f)
	if err := loop.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestAddIntegers(t *testing.T) {
	ctx, loop := newLoop(t)
	run(t, ctx, loop, "1 2 add")

	v, ok := ctx.Operand.Peek()
	if !ok {
		t.Fatal("operand stack is empty")
	}
	if v.Tag != object.Integer || v.Int != 3 {
		t.Fatalf("got %+v, want integer 3", v)
	}
}

func TestAddMixedCoercesToReal(t *testing.T) {
	ctx, loop := newLoop(t)
	run(t, ctx, loop, "1.5 2 add")

	v, ok := ctx.Operand.Peek()
	if !ok {
		t.Fatal("operand stack is empty")
	}
	if v.Tag != object.Real || v.Float != 3.5 {
		t.Fatalf("got %+v, want real 3.5", v)
	}
}

func TestDefAndLookup(t *testing.T) {
	ctx, loop := newLoop(t)
	run(t, ctx, loop, "/x 42 def x")

	v, ok := ctx.Operand.Peek()
	if !ok {
		t.Fatal("operand stack is empty")
	}
	if v.Tag != object.Integer || v.Int != 42 {
		t.Fatalf("got %+v, want integer 42", v)
	}
}

func TestForAccumulatesSum(t *testing.T) {
	ctx, loop := newLoop(t)
	run(t, ctx, loop, "0 1 1 4 {add} for")

	v, ok := ctx.Operand.Peek()
	if !ok {
		t.Fatal("operand stack is empty")
	}
	if v.Tag != object.Integer || v.Int != 10 {
		t.Fatalf("got %+v, want integer 10 (0+1+2+3+4)", v)
	}
}

func TestUndefinedNameSignalsError(t *testing.T) {
	ctx, loop := newLoop(t)
	run(t, ctx, loop, "nosuchname")

	known, err := ctxErrorFlag(ctx)
	if err != nil {
		t.Fatalf("checking $error: %v", err)
	}
	if !known {
		t.Fatal("expected $error/newerror to be set true after an undefined name")
	}
}

func ctxErrorFlag(ctx *pscontext.Context) (bool, error) {
	v, err := runtime.DictGet(ctx.Files, ctx.ErrorState, ctx.System["newerror"])
	if err != nil {
		return false, err
	}
	return v.Tag == object.Boolean && v.Bool, nil
}
