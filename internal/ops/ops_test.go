package ops_test

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

func peekInt(t *testing.T, ctx *pscontext.Context) int32 {
	t.Helper()
	v, ok := ctx.Operand.Peek()
	if !ok {
		t.Fatal("operand stack empty")
	}
	if v.Tag != object.Integer {
		t.Fatalf("top of stack is %v, not an integer", v.Tag)
	}
	return v.Int
}

func TestStackOps(t *testing.T) {
	ctx, loop := newLoop(t)
	run(t, ctx, loop, "1 2 3 exch pop dup add")
	if got := peekInt(t, ctx); got != 6 {
		t.Fatalf("got %d, want 6 (exch->1 3 2, pop->1 3, dup add->3+3)", got)
	}
}

func TestGetinterval(t *testing.T) {
	ctx, loop := newLoop(t)
	run(t, ctx, loop, "(abcde) 1 3 getinterval length")
	if got := peekInt(t, ctx); got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
}

func TestStringLength(t *testing.T) {
	ctx, loop := newLoop(t)
	run(t, ctx, loop, "(hello) length")
	if got := peekInt(t, ctx); got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
}

func TestArrayForall(t *testing.T) {
	ctx, loop := newLoop(t)
	run(t, ctx, loop, "0 [1 2 3 4] {add} forall")
	if got := peekInt(t, ctx); got != 10 {
		t.Fatalf("got %d, want 10", got)
	}
}

func TestDictDefAndGet(t *testing.T) {
	ctx, loop := newLoop(t)
	run(t, ctx, loop, "/d 4 dict def d /k 99 put d /k get")
	if got := peekInt(t, ctx); got != 99 {
		t.Fatalf("got %d, want 99", got)
	}
}

func TestComparisonAndLogic(t *testing.T) {
	ctx, loop := newLoop(t)
	run(t, ctx, loop, "3 2 gt 1 0 gt and")
	v, ok := ctx.Operand.Peek()
	if !ok || v.Tag != object.Boolean || !v.Bool {
		t.Fatalf("got %+v, want boolean true", v)
	}
}

func TestStoppedCatchesStop(t *testing.T) {
	ctx, loop := newLoop(t)
	run(t, ctx, loop, "1 {2 stop 3} stopped")
	v, ok := ctx.Operand.Peek()
	if !ok || v.Tag != object.Boolean || !v.Bool {
		t.Fatalf("got %+v, want boolean true (stopped caught the stop)", v)
	}
}

func TestSaveRestoreRoundtrip(t *testing.T) {
	ctx, loop := newLoop(t)
	run(t, ctx, loop, "/x 1 def save /x 2 def x")
	if got := peekInt(t, ctx); got != 2 {
		t.Fatalf("got %d, want 2 before restore", got)
	}
	ctx.Operand.Pop()

	run(t, ctx, loop, "restore x")
	if got := peekInt(t, ctx); got != 1 {
		t.Fatalf("got %d, want 1 after restore", got)
	}
}

func TestCvsFormatsNumber(t *testing.T) {
	ctx, loop := newLoop(t)
	run(t, ctx, loop, "42 20 string cvs length")
	if got := peekInt(t, ctx); got != 2 {
		t.Fatalf("got %d, want 2 (cvs of 42 is \"42\")", got)
	}
}

func TestBindResolvesOperatorNames(t *testing.T) {
	ctx, loop := newLoop(t)
	run(t, ctx, loop, "{add} bind")
	v, ok := ctx.Operand.Peek()
	if !ok {
		t.Fatal("operand stack empty")
	}
	if v.Tag != object.Array {
		t.Fatalf("got %v, want an array", v.Tag)
	}
	head, err := runtime.ArrayGet(ctx.Files, v, 0)
	if err != nil {
		t.Fatalf("ArrayGet: %v", err)
	}
	if head.Tag != object.Operator {
		t.Fatalf("bind did not resolve 'add' to an operator binding, got %v", head.Tag)
	}
}
