package xpost_test

import (
	"testing"

	"github.com/cwbudde/go-xpost"
)

func TestRunStringDoesNotYieldWithoutDevice(t *testing.T) {
	ctx, err := xpost.Create(xpost.CreateSpec{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer ctx.Destroy()

	result, err := ctx.Run(xpost.InputString, "1 2 add")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Yielded {
		t.Fatal("did not expect a yield without a device bound")
	}
}

func TestCreateWithDeviceBindsNoError(t *testing.T) {
	var buf []byte
	ctx, err := xpost.Create(xpost.CreateSpec{
		DeviceSpec: "raster:bgr",
		Width:      2,
		Height:     1,
		OutputType: xpost.OutputBuffer,
		OutputPtr:  &buf,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer ctx.Destroy()

	// showpage is a legal no-op until the device dict's ImgData is
	// populated (internal/ops/device.go) — a bare script must not error.
	if _, err := ctx.Run(xpost.InputString, "showpage"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(buf) != 0 {
		t.Fatalf("got %d bytes, want 0 (nothing was rendered)", len(buf))
	}
}

func TestVersionGet(t *testing.T) {
	major, minor, micro := xpost.VersionGet()
	if major < 1 {
		t.Fatalf("major = %d, want >= 1", major)
	}
	_ = minor
	_ = micro
}

func TestDiagnostics(t *testing.T) {
	ctx, err := xpost.Create(xpost.CreateSpec{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer ctx.Destroy()

	if _, err := ctx.Run(xpost.InputString, "1 2 add"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	snapshot, err := ctx.Diagnostics()
	if err != nil {
		t.Fatalf("Diagnostics: %v", err)
	}
	if snapshot == "" {
		t.Fatal("expected a non-empty diagnostics snapshot")
	}
}
