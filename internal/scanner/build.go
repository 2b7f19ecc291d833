package scanner

import (
	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/pscontext"
	"github.com/cwbudde/go-xpost/internal/runtime"
)

// newString allocates a literal string object in the local bank holding b.
func newString(ctx *pscontext.Context, b []byte) (object.Object, error) {
	return runtime.NewString(ctx.Files, object.Local, len(b), b)
}

// arrayFromElements allocates a local-bank array holding elems, used to
// build procedure literals read by scanProcedure.
func arrayFromElements(ctx *pscontext.Context, elems []object.Object) (object.Object, error) {
	return runtime.ArrayFromElements(ctx.Files, object.Local, elems)
}
