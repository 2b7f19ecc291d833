package xpostcfg

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultLookups(t *testing.T) {
	cfg := Default()

	page, ok := cfg.PageSize("letter")
	if !ok || page.Width != 612 || page.Height != 792 {
		t.Fatalf("letter page size = %+v, ok=%v", page, ok)
	}

	dev, ok := cfg.Device("screen-bgr")
	if !ok || dev.DeviceSpec != "raster:bgr" {
		t.Fatalf("screen-bgr device = %+v, ok=%v", dev, ok)
	}

	if _, ok := cfg.Device("no-such-preset"); ok {
		t.Fatal("expected no-such-preset to be absent")
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "xpost.yaml")
	doc := `
page_sizes:
  - name: square
    width: 100
    height: 100
devices:
  - name: my-device
    device_spec: "png"
    page_size: square
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	page, ok := cfg.PageSize("square")
	if !ok || page.Width != 100 || page.Height != 100 {
		t.Fatalf("square page size = %+v, ok=%v", page, ok)
	}
	dev, ok := cfg.Device("my-device")
	if !ok || dev.DeviceSpec != "png" || dev.PageSize != "square" {
		t.Fatalf("my-device = %+v, ok=%v", dev, ok)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/xpost.yaml"); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
