package device

import (
	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/pscontext"
	"github.com/cwbudde/go-xpost/internal/runtime"
)

// CreateDict builds the PostScript-visible device dictionary (spec.md §4.9:
// "a plain dictionary containing callable operator entries") — width,
// height, DeviceRGB and a Private string standing in for the native struct
// a C device would stash there. The actual Create/Emit/Flush logic lives in
// Go (Instance.Emit, called from the `showpage` operator in internal/ops)
// rather than as PostScript-callable dict entries, since this interpreter
// has no drawing operator family (moveto/lineto/fill/...) for PostScript
// code itself to invoke the device through — only `showpage` ever needs it.
func CreateDict(ctx *pscontext.Context, d *Instance) (object.Object, error) {
	dd, err := runtime.NewDict(ctx.Files, object.Local, 8)
	if err != nil {
		return object.Object{}, err
	}
	if err := runtime.DictPut(ctx.Files, dd, ctx.System["width"], object.IntObject(int32(d.Width))); err != nil {
		return object.Object{}, err
	}
	if err := runtime.DictPut(ctx.Files, dd, ctx.System["height"], object.IntObject(int32(d.Height))); err != nil {
		return object.Object{}, err
	}
	deviceRGB, err := runtime.NewString(ctx.Files, object.Local, len("DeviceRGB"), []byte("DeviceRGB"))
	if err != nil {
		return object.Object{}, err
	}
	if err := runtime.DictPut(ctx.Files, dd, ctx.System["DeviceRGB"], deviceRGB); err != nil {
		return object.Object{}, err
	}
	private, err := runtime.NewString(ctx.Files, object.Local, 0, nil)
	if err != nil {
		return object.Object{}, err
	}
	if err := runtime.DictPut(ctx.Files, dd, ctx.System["Private"], private); err != nil {
		return object.Object{}, err
	}
	return dd, nil
}
