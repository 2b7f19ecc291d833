// Package diag implements spec.md §7 / SPEC_FULL.md §6.3's diagnostic
// surface: human-readable stack dumps under VERBOSE/TRACING message
// levels, JSON trace snapshots for tooling, and naturally-sorted dict-key
// listings for anything that prints a dictionary's contents.
package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/pscontext"
	"github.com/cwbudde/go-xpost/internal/runtime"
)

// describe renders a single Object the way a VERBOSE stack dump does:
// type name plus a short value hint, never the full composite contents
// (that's what TraceJSON is for).
func describe(ctx *pscontext.Context, o object.Object) string {
	switch o.Tag {
	case object.Integer:
		return fmt.Sprintf("%d", o.Int)
	case object.Real:
		return fmt.Sprintf("%g", o.Float)
	case object.Boolean:
		return fmt.Sprintf("%t", o.Bool)
	case object.Name:
		mark := ""
		if !o.Exec {
			mark = "/"
		}
		return mark + ctx.Names.NameBytes(o)
	case object.String:
		b, err := runtime.StringBytes(ctx.Files, o)
		if err != nil {
			return "(?)"
		}
		return fmt.Sprintf("(%s)", b)
	case object.Array:
		return fmt.Sprintf("%s[%d]", kind(o.Exec, "proc", "array"), runtime.ArrayLength(o))
	case object.Dict:
		n, _ := runtime.DictLength(ctx.Files, o)
		return fmt.Sprintf("dict[%d]", n)
	case object.Mark:
		return "-mark-"
	case object.Null:
		return "-null-"
	case object.Save:
		return fmt.Sprintf("-save%d-", o.Int)
	default:
		return o.Tag.String()
	}
}

func kind(exec bool, yes, no string) string {
	if exec {
		return yes
	}
	return no
}

// DumpStack renders a stack's contents bottom-to-top, one line, the way
// `pstack`/VERBOSE tracing does. Returns "" under Quiet.
func DumpStack(ctx *pscontext.Context, label string, items []object.Object) string {
	if ctx.MsgLevel == pscontext.Quiet {
		return ""
	}
	parts := make([]string, len(items))
	for i, o := range items {
		parts[i] = describe(ctx, o)
	}
	return fmt.Sprintf("%s: %s", label, strings.Join(parts, " "))
}

// DumpAll renders the operand, execution and dictionary stacks, one line
// each; it returns "" under Quiet.
func DumpAll(ctx *pscontext.Context) string {
	if ctx.MsgLevel == pscontext.Quiet {
		return ""
	}
	lines := []string{
		DumpStack(ctx, "operand", ctx.Operand.All()),
		DumpStack(ctx, "exec", ctx.Execution.All()),
		DumpStack(ctx, "dict", ctx.Dictionary.All()),
	}
	return strings.Join(lines, "\n")
}

// SortedDictKeys returns d's keys as their cvs-style text, naturally sorted
// (so "item2" precedes "item10") — used anywhere a dict's contents are
// printed for a human, since dict iteration order itself is unspecified
// (spec.md §4.4).
func SortedDictKeys(ctx *pscontext.Context, d object.Object) ([]string, error) {
	var keys []string
	err := runtime.DictEach(ctx.Files, d, func(k, v object.Object) error {
		keys = append(keys, keyText(ctx, k))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Sort(natural.StringSlice(keys))
	return keys, nil
}

func keyText(ctx *pscontext.Context, k object.Object) string {
	switch k.Tag {
	case object.Name:
		return ctx.Names.NameBytes(k)
	case object.Integer:
		return fmt.Sprintf("%d", k.Int)
	case object.String:
		b, err := runtime.StringBytes(ctx.Files, k)
		if err == nil {
			return string(b)
		}
	}
	return describe(ctx, k)
}

// TraceJSON builds a JSON snapshot of the interpreter's current state —
// operand/execution stack contents and $error — for TRACING-level tooling
// that wants structured output instead of the plain-text DumpAll lines.
// Built incrementally with sjson.Set rather than marshaling a struct, since
// the document's shape (stack arrays of heterogeneous, already-stringified
// operand descriptions) is naturally a set of independent JSON path writes.
func TraceJSON(ctx *pscontext.Context) (string, error) {
	doc := "{}"
	var err error
	if doc, err = sjson.Set(doc, "saveLevel", ctx.SaveLevel); err != nil {
		return "", err
	}

	operand := ctx.Operand.All()
	for i, o := range operand {
		if doc, err = sjson.Set(doc, fmt.Sprintf("operand.%d", i), describe(ctx, o)); err != nil {
			return "", err
		}
	}
	exec := ctx.Execution.All()
	for i, o := range exec {
		if doc, err = sjson.Set(doc, fmt.Sprintf("execution.%d", i), describe(ctx, o)); err != nil {
			return "", err
		}
	}

	newErr, known, err := dictLookup(ctx, "newerror")
	if err != nil {
		return "", err
	}
	if known {
		if doc, err = sjson.Set(doc, "error.new", newErr.Bool); err != nil {
			return "", err
		}
	}
	if name, known, err := dictLookup(ctx, "errorname"); err == nil && known {
		if doc, err = sjson.Set(doc, "error.name", ctx.Names.NameBytes(name)); err != nil {
			return "", err
		}
	}
	return doc, nil
}

// QueryTrace extracts a single field (dotted gjson path, e.g.
// "error.name") from a document built by TraceJSON, letting a CLI flag or
// test assertion pull one value out without round-tripping the whole
// snapshot through a struct.
func QueryTrace(trace, path string) (string, bool) {
	r := gjson.Get(trace, path)
	return r.String(), r.Exists()
}

func dictLookup(ctx *pscontext.Context, sysName string) (object.Object, bool, error) {
	key, ok := ctx.System[sysName]
	if !ok {
		return object.Object{}, false, nil
	}
	known, err := runtime.DictKnown(ctx.Files, ctx.ErrorState, key)
	if err != nil || !known {
		return object.Object{}, false, err
	}
	v, err := runtime.DictGet(ctx.Files, ctx.ErrorState, key)
	return v, true, err
}
