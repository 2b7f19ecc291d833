// Package device implements spec.md §4.9/§4.10's device interface: the
// boundary contract between the interpreter and a raster or PNG back end.
// Grounded on original_source/src/lib/xpost_dev_bgr.c's `_create`/`Emit`
// shape (continuation-style creation, a `Private` stash, row-ordered pixel
// copy), adapted from C struct pointers to a plain Go struct referenced
// through pscontext.DeviceBinding.Instance.
package device

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/pscontext"
	"github.com/cwbudde/go-xpost/internal/runtime"
)

// Instance is the device's native state — the Go analogue of the `Private`
// byte string a C device stashes its struct in (spec.md §4.9).
type Instance struct {
	Family string // "raster" or "png"
	Mode   string // rgb/bgr/argb/bgra; ignored for png
	Width  int
	Height int
}

// New validates family/mode and returns a new Instance (spec.md §6
// `device_spec` grammar: "raster", "raster:<mode>", or "png").
func New(family, mode string, width, height int) (*Instance, error) {
	switch family {
	case "raster":
		switch mode {
		case "rgb", "bgr", "argb", "bgra":
		default:
			return nil, fmt.Errorf("device: unknown raster mode %q", mode)
		}
	case "png":
		mode = ""
	default:
		return nil, fmt.Errorf("device: unknown family %q", family)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("device: invalid dimensions %dx%d", width, height)
	}
	return &Instance{Family: family, Mode: mode, Width: width, Height: height}, nil
}

// Emit renders imgData — an array of Height rows, each an executable-free
// array of Width*3 integers (R,G,B, 0-255, row-major) — into the device's
// native output encoding (spec.md §4.9: "`Emit` ... may copy the
// interpreter's rendered image ... into a client-owned buffer"). For the
// raster family this reorders channels per Mode; for png it encodes a real
// PNG image via the standard library's encoder (no pack example wires a
// PNG codec — see DESIGN.md).
func (d *Instance) Emit(ctx *pscontext.Context, imgData object.Object) ([]byte, error) {
	rows, err := runtime.ArrayElements(ctx.Files, imgData)
	if err != nil {
		return nil, err
	}
	if len(rows) != d.Height {
		return nil, fmt.Errorf("device: ImgData has %d rows, want %d", len(rows), d.Height)
	}

	if d.Family == "png" {
		return d.emitPNG(ctx, rows)
	}
	return d.emitRaster(ctx, rows)
}

func (d *Instance) emitRaster(ctx *pscontext.Context, rows []object.Object) ([]byte, error) {
	channels := 3
	if d.Mode == "argb" || d.Mode == "bgra" {
		channels = 4
	}
	buf := make([]byte, 0, d.Width*d.Height*channels)
	for y, row := range rows {
		px, err := runtime.ArrayElements(ctx.Files, row)
		if err != nil {
			return nil, err
		}
		if len(px) != d.Width*3 {
			return nil, fmt.Errorf("device: row %d has %d samples, want %d", y, len(px), d.Width*3)
		}
		for x := 0; x < d.Width; x++ {
			r := byte(px[x*3+0].Int)
			g := byte(px[x*3+1].Int)
			b := byte(px[x*3+2].Int)
			switch d.Mode {
			case "rgb":
				buf = append(buf, r, g, b)
			case "bgr":
				buf = append(buf, b, g, r)
			case "argb":
				buf = append(buf, 0xFF, r, g, b)
			case "bgra":
				buf = append(buf, b, g, r, 0xFF)
			}
		}
	}
	return buf, nil
}

func (d *Instance) emitPNG(ctx *pscontext.Context, rows []object.Object) ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, d.Width, d.Height))
	for y, row := range rows {
		px, err := runtime.ArrayElements(ctx.Files, row)
		if err != nil {
			return nil, err
		}
		if len(px) != d.Width*3 {
			return nil, fmt.Errorf("device: row %d has %d samples, want %d", y, len(px), d.Width*3)
		}
		for x := 0; x < d.Width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: byte(px[x*3+0].Int),
				G: byte(px[x*3+1].Int),
				B: byte(px[x*3+2].Int),
				A: 0xFF,
			})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
