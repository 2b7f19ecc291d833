package device_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/cwbudde/go-xpost/internal/device"
	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/pscontext"
	"github.com/cwbudde/go-xpost/internal/runtime"
)

func newTestContext(t *testing.T) *pscontext.Context {
	t.Helper()
	ctx, err := pscontext.New(1<<18, 1<<14)
	if err != nil {
		t.Fatalf("pscontext.New: %v", err)
	}
	return ctx
}

// onePixelImgData builds a 1x1 ImgData array holding a single RGB triple.
func onePixelImgData(t *testing.T, ctx *pscontext.Context, r, g, b int32) object.Object {
	t.Helper()
	row, err := runtime.ArrayFromElements(ctx.Files, object.Local, []object.Object{
		object.IntObject(r), object.IntObject(g), object.IntObject(b),
	})
	if err != nil {
		t.Fatalf("ArrayFromElements row: %v", err)
	}
	img, err := runtime.ArrayFromElements(ctx.Files, object.Local, []object.Object{row})
	if err != nil {
		t.Fatalf("ArrayFromElements img: %v", err)
	}
	return img
}

func TestNewValidatesFamilyAndMode(t *testing.T) {
	if _, err := device.New("raster", "rgb", 1, 1); err != nil {
		t.Errorf("raster:rgb should be valid: %v", err)
	}
	if _, err := device.New("raster", "xyz", 1, 1); err == nil {
		t.Error("raster:xyz should be rejected")
	}
	if _, err := device.New("png", "", 1, 1); err != nil {
		t.Errorf("png should be valid: %v", err)
	}
	if _, err := device.New("raster", "rgb", 0, 1); err == nil {
		t.Error("zero width should be rejected")
	}
}

func TestEmitRasterBGR(t *testing.T) {
	ctx := newTestContext(t)
	inst, err := device.New("raster", "bgr", 1, 1)
	if err != nil {
		t.Fatalf("device.New: %v", err)
	}
	img := onePixelImgData(t, ctx, 255, 0, 0) // pure red in RGB order

	buf, err := inst.Emit(ctx, img)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if len(buf) != 3 {
		t.Fatalf("got %d bytes, want 3", len(buf))
	}
	if buf[0] != 0 || buf[1] != 0 || buf[2] != 255 {
		t.Fatalf("got bgr bytes %v, want [0 0 255] (red reordered to BGR)", buf)
	}
}

func TestEmitRasterARGB(t *testing.T) {
	ctx := newTestContext(t)
	inst, err := device.New("raster", "argb", 1, 1)
	if err != nil {
		t.Fatalf("device.New: %v", err)
	}
	img := onePixelImgData(t, ctx, 10, 20, 30)

	buf, err := inst.Emit(ctx, img)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if len(buf) != 4 || buf[0] != 0xFF || buf[1] != 10 || buf[2] != 20 || buf[3] != 30 {
		t.Fatalf("got %v, want [255 10 20 30]", buf)
	}
}

func TestEmitPNGProducesDecodableImage(t *testing.T) {
	ctx := newTestContext(t)
	inst, err := device.New("png", "", 2, 2)
	if err != nil {
		t.Fatalf("device.New: %v", err)
	}
	row, err := runtime.ArrayFromElements(ctx.Files, object.Local, []object.Object{
		object.IntObject(1), object.IntObject(2), object.IntObject(3),
		object.IntObject(4), object.IntObject(5), object.IntObject(6),
	})
	if err != nil {
		t.Fatalf("ArrayFromElements: %v", err)
	}
	img, err := runtime.ArrayFromElements(ctx.Files, object.Local, []object.Object{row, row})
	if err != nil {
		t.Fatalf("ArrayFromElements: %v", err)
	}

	buf, err := inst.Emit(ctx, img)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if decoded.Bounds().Dx() != 2 || decoded.Bounds().Dy() != 2 {
		t.Fatalf("decoded image is %v, want 2x2", decoded.Bounds())
	}
}

func TestCreateDict(t *testing.T) {
	ctx := newTestContext(t)
	inst, err := device.New("raster", "rgb", 10, 20)
	if err != nil {
		t.Fatalf("device.New: %v", err)
	}
	d, err := device.CreateDict(ctx, inst)
	if err != nil {
		t.Fatalf("CreateDict: %v", err)
	}
	w, err := runtime.DictGet(ctx.Files, d, ctx.System["width"])
	if err != nil {
		t.Fatalf("DictGet width: %v", err)
	}
	if w.Tag != object.Integer || w.Int != 10 {
		t.Fatalf("width = %+v, want integer 10", w)
	}
}
