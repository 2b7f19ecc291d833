package ops_test

import (
	"math"
	"testing"

	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/pscontext"
	"github.com/cwbudde/go-xpost/internal/runtime"
)

func peekFloat(t *testing.T, ctx *pscontext.Context) float64 {
	t.Helper()
	v, ok := ctx.Operand.Peek()
	if !ok {
		t.Fatal("operand stack empty")
	}
	switch v.Tag {
	case object.Integer:
		return float64(v.Int)
	case object.Real:
		return float64(v.Float)
	default:
		t.Fatalf("top of stack is %v, not a number", v.Tag)
		return 0
	}
}

func ctxErrorFlag(t *testing.T, ctx *pscontext.Context) bool {
	t.Helper()
	v, err := runtime.DictGet(ctx.Files, ctx.ErrorState, ctx.System["newerror"])
	if err != nil {
		t.Fatalf("checking $error: %v", err)
	}
	return v.Tag == object.Boolean && v.Bool
}

func TestArithmeticOperators(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want float64
	}{
		{"sub", "5 3 sub", 2},
		{"mul", "4 3 mul", 12},
		{"div", "7 2 div", 3.5},
		{"idiv", "7 2 idiv", 3},
		{"mod", "7 2 mod", 1},
		{"negInt", "3 neg", -3},
		{"negReal", "3.5 neg", -3.5},
		{"absInt", "-4 abs", 4},
		{"absReal", "-4.5 abs", 4.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx, loop := newLoop(t)
			run(t, ctx, loop, c.src)
			got := peekFloat(t, ctx)
			if got != c.want {
				t.Fatalf("%s: got %v, want %v", c.src, got, c.want)
			}
		})
	}
}

func TestDivByZeroSignalsUndefinedResult(t *testing.T) {
	ctx, loop := newLoop(t)
	run(t, ctx, loop, "1 0 div")
	if !ctxErrorFlag(t, ctx) {
		t.Fatal("expected $error/newerror to be set after 1 0 div")
	}
}

func TestTranscendentalFunctions(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want float64
	}{
		{"sqrt", "9 sqrt", 3},
		{"sin", "90 sin", 1},
		{"cos", "0 cos", 1},
		{"ceiling", "4.2 ceiling", 5},
		{"floor", "4.8 floor", 4},
		{"round", "4.5 round", 5},
		{"truncate", "4.9 truncate", 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ctx, loop := newLoop(t)
			run(t, ctx, loop, c.src)
			got := peekFloat(t, ctx)
			if math.Abs(got-c.want) > 1e-6 {
				t.Fatalf("%s: got %v, want %v", c.src, got, c.want)
			}
		})
	}
}
