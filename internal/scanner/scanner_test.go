package scanner

import (
	"testing"

	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/pscontext"
)

func newTestContext(t *testing.T) *pscontext.Context {
	t.Helper()
	ctx, err := pscontext.New(1<<16, 1<<14)
	if err != nil {
		t.Fatalf("pscontext.New: %v", err)
	}
	return ctx
}

func scanAll(t *testing.T, ctx *pscontext.Context, src string) []object.Object {
	t.Helper()
	sc := New(src)
	var toks []object.Object
	for {
		tok, ok, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			break
		}
		toks = append(toks, tok)
	}
	return toks
}

func TestNextNumbers(t *testing.T) {
	ctx := newTestContext(t)
	toks := scanAll(t, ctx, "1 -2 3.14 1.0e3 8#17 16#FF")

	tests := []struct {
		tag   object.Type
		isInt bool
		n     int32
		f     float32
	}{
		{object.Integer, true, 1, 0},
		{object.Integer, true, -2, 0},
		{object.Real, false, 0, 3.14},
		{object.Real, false, 0, 1000},
		{object.Integer, true, 15, 0},  // 8#17
		{object.Integer, true, 255, 0}, // 16#FF
	}
	if len(toks) != len(tests) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(tests))
	}
	for i, tt := range tests {
		if toks[i].Tag != tt.tag {
			t.Errorf("token %d: tag = %v, want %v", i, toks[i].Tag, tt.tag)
			continue
		}
		if tt.isInt && toks[i].Int != tt.n {
			t.Errorf("token %d: int = %d, want %d", i, toks[i].Int, tt.n)
		}
		if !tt.isInt && toks[i].Float != tt.f {
			t.Errorf("token %d: float = %g, want %g", i, toks[i].Float, tt.f)
		}
	}
}

func TestNextNamesAndLiterals(t *testing.T) {
	ctx := newTestContext(t)
	toks := scanAll(t, ctx, "/foo foo //bar")

	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3", len(toks))
	}
	if toks[0].Tag != object.Name || toks[0].Exec {
		t.Errorf("/foo: want literal name, got tag=%v exec=%v", toks[0].Tag, toks[0].Exec)
	}
	if toks[1].Tag != object.Name || !toks[1].Exec {
		t.Errorf("foo: want executable name, got tag=%v exec=%v", toks[1].Tag, toks[1].Exec)
	}
	if toks[2].Tag != object.Name || toks[2].Exec {
		t.Errorf("//bar: want literal name (immediately-evaluated form), got tag=%v exec=%v", toks[2].Tag, toks[2].Exec)
	}
	if ctx.Names.NameBytes(toks[0]) != ctx.Names.NameBytes(toks[1]) {
		t.Errorf("/foo and foo should intern to the same name entity")
	}
}

func TestNameBankMatchesSystemNames(t *testing.T) {
	// Scanned names must intern into the same bank as system/operator names
	// (object.Global), or dict lookups against systemdict would never match.
	ctx := newTestContext(t)
	toks := scanAll(t, ctx, "systemdict")
	if toks[0].BankOf != object.Global {
		t.Fatalf("scanned name bank = %v, want Global", toks[0].BankOf)
	}
	sysName := ctx.System["systemdict"]
	if toks[0].Ent != sysName.Ent || toks[0].BankOf != sysName.BankOf {
		t.Fatalf("scanned 'systemdict' does not match interned system name: got (%d,%v) want (%d,%v)",
			toks[0].Ent, toks[0].BankOf, sysName.Ent, sysName.BankOf)
	}
}

func TestNextStringLiteral(t *testing.T) {
	ctx := newTestContext(t)
	toks := scanAll(t, ctx, `(hello\nworld) (a(b)c) <48656c6c6f>`)
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3", len(toks))
	}
	for i, tok := range toks {
		if tok.Tag != object.String {
			t.Errorf("token %d: tag = %v, want String", i, tok.Tag)
		}
	}
}

func TestNextProcedure(t *testing.T) {
	ctx := newTestContext(t)
	toks := scanAll(t, ctx, "{ 1 2 add }")
	if len(toks) != 1 {
		t.Fatalf("got %d tokens, want 1", len(toks))
	}
	if toks[0].Tag != object.Array || !toks[0].Exec {
		t.Fatalf("want an executable array, got tag=%v exec=%v", toks[0].Tag, toks[0].Exec)
	}
}

func TestNextDictDelimiters(t *testing.T) {
	ctx := newTestContext(t)
	toks := scanAll(t, ctx, "<< /a 1 >>")
	if len(toks) != 4 {
		t.Fatalf("got %d tokens, want 4", len(toks))
	}
	if toks[0].Tag != object.Mark {
		t.Errorf("<<: want Mark, got %v", toks[0].Tag)
	}
	if toks[3].Tag != object.Name || !toks[3].Exec {
		t.Errorf(">>: want an executable name, got tag=%v exec=%v", toks[3].Tag, toks[3].Exec)
	}
}
