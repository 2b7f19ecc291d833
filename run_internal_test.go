package xpost

import (
	"testing"

	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/runtime"
)

// TestShowpageRendersBoundDevice exercises the full pipeline a drawing
// operator family would eventually drive: populate the bound device dict's
// ImgData directly (white-box, since this interpreter has no moveto/fill
// family yet — see DESIGN.md's `ImgData` note) and confirm `showpage`
// renders it through to the output buffer.
func TestShowpageRendersBoundDevice(t *testing.T) {
	var buf []byte
	ctx, err := Create(CreateSpec{
		DeviceSpec: "raster:bgr",
		Width:      1,
		Height:     1,
		OutputType: OutputBuffer,
		OutputPtr:  &buf,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer ctx.Destroy()

	files := ctx.inner.Files
	row, err := runtime.ArrayFromElements(files, object.Local, []object.Object{
		object.IntObject(255), object.IntObject(0), object.IntObject(0),
	})
	if err != nil {
		t.Fatalf("ArrayFromElements row: %v", err)
	}
	imgData, err := runtime.ArrayFromElements(files, object.Local, []object.Object{row})
	if err != nil {
		t.Fatalf("ArrayFromElements imgData: %v", err)
	}
	if err := runtime.DictPut(files, ctx.inner.Device.DevDict, ctx.inner.System["ImgData"], imgData); err != nil {
		t.Fatalf("DictPut ImgData: %v", err)
	}

	if _, err := ctx.Run(InputString, "showpage"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(buf) != 3 || buf[0] != 0 || buf[1] != 0 || buf[2] != 255 {
		t.Fatalf("got %v, want [0 0 255] (red reordered to BGR)", buf)
	}
}

func TestShowpageYieldsUnderShowpageReturn(t *testing.T) {
	ctx, err := Create(CreateSpec{
		DeviceSpec:   "png",
		Width:        1,
		Height:       1,
		ShowpageMode: 0, // pscontext.ShowpageReturn
		OutputType:   OutputFilename,
		OutputPath:   t.TempDir() + "/out.png",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer ctx.Destroy()

	files := ctx.inner.Files
	row, err := runtime.ArrayFromElements(files, object.Local, []object.Object{
		object.IntObject(1), object.IntObject(2), object.IntObject(3),
	})
	if err != nil {
		t.Fatalf("ArrayFromElements row: %v", err)
	}
	imgData, err := runtime.ArrayFromElements(files, object.Local, []object.Object{row})
	if err != nil {
		t.Fatalf("ArrayFromElements imgData: %v", err)
	}
	if err := runtime.DictPut(files, ctx.inner.Device.DevDict, ctx.inner.System["ImgData"], imgData); err != nil {
		t.Fatalf("DictPut ImgData: %v", err)
	}

	result, err := ctx.Run(InputString, "showpage")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.Yielded {
		t.Fatal("expected showpage to yield under ShowpageReturn")
	}
}
