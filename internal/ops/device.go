package ops

import (
	"os"

	"github.com/cwbudde/go-xpost/internal/device"
	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/optable"
	"github.com/cwbudde/go-xpost/internal/pscontext"
	"github.com/cwbudde/go-xpost/internal/pserrors"
	"github.com/cwbudde/go-xpost/internal/runtime"
)

// installDevice wires `showpage` (spec.md §4.9, §4.10, §8 scenario 5): read
// the device dict's ImgData, render it through the bound Instance, hand the
// bytes to the embedder (BUFFEROUT pointer or a FILENAME path), and — under
// ShowpageReturn — suspend the loop at the "Suspension points" spec.md §4.9
// describes, leaving Context state intact for a later RESUME run.
func installDevice(ctx *pscontext.Context, t *optable.Table) {
	reg(ctx, t, optable.Operator{Name: "showpage", Signatures: []optable.Signature{
		sig(func(ctx *pscontext.Context, a []object.Object) ([]object.Object, error) {
			if ctx.Device == nil {
				return nil, nil
			}
			inst, ok := ctx.Device.Instance.(*device.Instance)
			if !ok || inst == nil {
				return nil, pserrors.New(pserrors.UndefinedResource, "no device bound")
			}

			known, err := runtime.DictKnown(ctx.Files, ctx.Device.DevDict, ctx.System["ImgData"])
			if err != nil {
				return nil, err
			}
			if !known {
				// Nothing drawn yet; showpage is still a legal no-op (spec.md
				// §8 scenario 5 always has ImgData populated by the time
				// showpage runs, but a bare `showpage` shouldn't fault).
				return nil, nil
			}
			imgData, err := runtime.DictGet(ctx.Files, ctx.Device.DevDict, ctx.System["ImgData"])
			if err != nil {
				return nil, err
			}

			buf, err := inst.Emit(ctx, imgData)
			if err != nil {
				return nil, pserrors.New(pserrors.IOError, "%v", err)
			}

			if ctx.Device.OutputIsFile {
				if err := os.WriteFile(ctx.Device.OutputPath, buf, 0o644); err != nil {
					return nil, pserrors.New(pserrors.IOError, "%v", err)
				}
			} else if ctx.Device.OutputBuffer != nil {
				*ctx.Device.OutputBuffer = buf
			}

			if ctx.ShowpageMode == pscontext.ShowpageReturn {
				ctx.Yielded = true
			}
			return nil, nil
		}),
	}})
}
