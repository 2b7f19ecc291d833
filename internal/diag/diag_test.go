package diag

import (
	"testing"

	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/pscontext"
	"github.com/cwbudde/go-xpost/internal/runtime"
)

func newTestContext(t *testing.T) *pscontext.Context {
	t.Helper()
	ctx, err := pscontext.New(1<<16, 1<<14)
	if err != nil {
		t.Fatalf("pscontext.New: %v", err)
	}
	return ctx
}

func TestDumpStackQuietReturnsEmpty(t *testing.T) {
	ctx := newTestContext(t)
	ctx.MsgLevel = pscontext.Quiet
	ctx.Operand.Push(object.IntObject(1))
	if got := DumpStack(ctx, "operand", ctx.Operand.All()); got != "" {
		t.Fatalf("got %q, want empty string under Quiet", got)
	}
}

func TestDumpStackVerbose(t *testing.T) {
	ctx := newTestContext(t)
	ctx.MsgLevel = pscontext.Verbose
	ctx.Operand.Push(object.IntObject(1))
	ctx.Operand.Push(object.BoolObject(true))
	got := DumpStack(ctx, "operand", ctx.Operand.All())
	want := "operand: 1 true"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSortedDictKeysNaturalOrder(t *testing.T) {
	ctx := newTestContext(t)
	d, err := runtime.NewDict(ctx.Files, object.Local, 8)
	if err != nil {
		t.Fatalf("NewDict: %v", err)
	}
	for _, name := range []string{"item10", "item2", "item1"} {
		key := ctx.Names.ConsName(object.Global, name)
		if err := runtime.DictPut(ctx.Files, d, key, object.NullObject()); err != nil {
			t.Fatalf("DictPut: %v", err)
		}
	}
	keys, err := SortedDictKeys(ctx, d)
	if err != nil {
		t.Fatalf("SortedDictKeys: %v", err)
	}
	want := []string{"item1", "item2", "item10"}
	if len(keys) != len(want) {
		t.Fatalf("got %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("got %v, want %v", keys, want)
		}
	}
}

func TestTraceJSONAndQueryTrace(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Operand.Push(object.IntObject(42))

	trace, err := TraceJSON(ctx)
	if err != nil {
		t.Fatalf("TraceJSON: %v", err)
	}

	if v, ok := QueryTrace(trace, "operand.0"); !ok || v != "42" {
		t.Fatalf("operand.0 = %q, ok=%v, want \"42\"", v, ok)
	}
	if v, ok := QueryTrace(trace, "error.new"); !ok || v != "false" {
		t.Fatalf("error.new = %q, ok=%v, want \"false\"", v, ok)
	}
}
