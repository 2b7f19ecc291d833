// Package xpostcfg loads the YAML-driven page-size and device presets
// SPEC_FULL.md §6.2 adds on top of spec.md's embedding API: named shortcuts
// for the (device_spec, width, height) triple `create` otherwise requires
// spelling out every time.
package xpostcfg

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// PageSize is one named page-size preset ("letter", "a4", ...).
type PageSize struct {
	Name   string `yaml:"name"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// DevicePreset names a device_spec string (spec.md §6 grammar) plus the
// default page size it's normally paired with.
type DevicePreset struct {
	Name       string `yaml:"name"`
	DeviceSpec string `yaml:"device_spec"`
	PageSize   string `yaml:"page_size"`
}

// Config is the top-level document shape.
type Config struct {
	PageSizes []PageSize     `yaml:"page_sizes"`
	Devices   []DevicePreset `yaml:"devices"`
}

// Default mirrors the common PostScript page sizes (in points, 72/inch) and
// the device families spec.md §6 names.
func Default() *Config {
	return &Config{
		PageSizes: []PageSize{
			{Name: "letter", Width: 612, Height: 792},
			{Name: "legal", Width: 612, Height: 1008},
			{Name: "a4", Width: 595, Height: 842},
			{Name: "a3", Width: 842, Height: 1191},
		},
		Devices: []DevicePreset{
			{Name: "screen-rgb", DeviceSpec: "raster:rgb", PageSize: "letter"},
			{Name: "screen-bgr", DeviceSpec: "raster:bgr", PageSize: "letter"},
			{Name: "print-png", DeviceSpec: "png", PageSize: "letter"},
		},
	}
}

// Load reads and parses a YAML config file, grounded on the teacher's use
// of a struct-tagged document model for its own settings (the pack's only
// source of a YAML dependency is go-snaps's transitive use; this interpreter
// is the first to decode YAML directly, per DESIGN.md's dependency-promotion
// note).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("xpostcfg: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("xpostcfg: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// PageSize looks up a named page size, falling back to Default()'s table.
func (c *Config) PageSize(name string) (PageSize, bool) {
	for _, p := range c.PageSizes {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range Default().PageSizes {
		if p.Name == name {
			return p, true
		}
	}
	return PageSize{}, false
}

// Device looks up a named device preset.
func (c *Config) Device(name string) (DevicePreset, bool) {
	for _, d := range c.Devices {
		if d.Name == name {
			return d, true
		}
	}
	return DevicePreset{}, false
}
