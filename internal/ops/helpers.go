package ops

import (
	"strconv"

	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/pscontext"
	"github.com/cwbudde/go-xpost/internal/runtime"
)

func stringBytes(ctx *pscontext.Context, s object.Object) ([]byte, error) {
	return runtime.StringBytes(ctx.Files, s)
}

func putStringBytes(ctx *pscontext.Context, s object.Object, rel int, b []byte) error {
	return runtime.StringPutBytes(ctx.Files, s, rel, b)
}

func substring(s object.Object, start, length int) (object.Object, error) {
	return runtime.Substring(s, start, length)
}

// formatOperand renders o the way `cvs`/print diagnostics do: plain decimal
// for numbers, true/false for booleans, the interned bytes for names, and
// null for null, and the type name between "--" marks (e.g. --arraytype--)
// for anything else cvs has no simple text for.
func formatOperand(ctx *pscontext.Context, o object.Object) string {
	switch o.Tag {
	case object.Integer:
		return strconv.FormatInt(int64(o.Int), 10)
	case object.Real:
		return strconv.FormatFloat(float64(o.Float), 'g', -1, 32)
	case object.Boolean:
		if o.Bool {
			return "true"
		}
		return "false"
	case object.Name:
		return ctx.Names.NameBytes(o)
	case object.Null:
		return "null"
	default:
		return "--" + o.Tag.String() + "--"
	}
}
