// Package xpost is the embedding API (spec.md §6): a small, idiomatic Go
// surface over the interpreter runtime in internal/, matching the original
// C library's Init/Create/Run/Destroy lifecycle one call at a time.
package xpost

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-xpost/internal/device"
	"github.com/cwbudde/go-xpost/internal/diag"
	"github.com/cwbudde/go-xpost/internal/exec"
	"github.com/cwbudde/go-xpost/internal/optable"
	"github.com/cwbudde/go-xpost/internal/ops"
	"github.com/cwbudde/go-xpost/internal/pscontext"
	"github.com/cwbudde/go-xpost/internal/xpostcfg"
	"github.com/cwbudde/go-xpost/internal/xpostio"
)

const (
	versionMajor = 1
	versionMinor = 0
	versionMicro = 0
)

// OutputType selects where a device's rendered bytes go (spec.md §6).
type OutputType int

const (
	OutputFilename OutputType = iota
	OutputBuffer
)

// InputKind selects how Run's input argument is interpreted (spec.md §6).
type InputKind int

const (
	InputString InputKind = iota
	InputFilename
	InputResume
)

// CreateSpec carries every Create-time option spec.md §6 names as
// positional C arguments, gathered into one Go struct.
type CreateSpec struct {
	DeviceSpec   string // "raster", "raster:bgr", "png", ... (spec.md §6 grammar)
	OutputType   OutputType
	OutputPath   string  // used when OutputType == OutputFilename
	OutputPtr    *[]byte // used when OutputType == OutputBuffer
	ShowpageMode pscontext.ShowpageMode
	MsgLevel     pscontext.MsgLevel
	Width        int
	Height       int

	LocalMemSize  int // bytes; 0 uses a sane default
	GlobalMemSize int

	// Config, if set, resolves DeviceSpec/Width/Height against a named
	// preset via ApplyConfig before Create validates anything.
	Config     *xpostcfg.Config
	PresetName string
}

// ApplyConfig resolves spec's PresetName against cfg, filling in
// DeviceSpec/Width/Height from the matching device and page-size preset
// when the caller hasn't already set them explicitly (SPEC_FULL.md §6.2).
func (spec *CreateSpec) ApplyConfig(cfg *xpostcfg.Config) error {
	if spec.PresetName == "" {
		return nil
	}
	dev, ok := cfg.Device(spec.PresetName)
	if !ok {
		return fmt.Errorf("xpost: unknown device preset %q", spec.PresetName)
	}
	if spec.DeviceSpec == "" {
		spec.DeviceSpec = dev.DeviceSpec
	}
	if spec.Width == 0 && spec.Height == 0 {
		if page, ok := cfg.PageSize(dev.PageSize); ok {
			spec.Width, spec.Height = page.Width, page.Height
		}
	}
	return nil
}

const (
	defaultLocalMem  = 1 << 20
	defaultGlobalMem = 1 << 18
)

// Context is the embedder-facing handle onto one interpreter instance.
type Context struct {
	inner *pscontext.Context
	loop  *exec.Loop
	table *optable.Table
}

// Init performs process-wide setup. It exists to match spec.md §6's
// lifecycle; this implementation has no global state to initialize beyond
// what Create already does per-Context (spec.md §9 "Global state").
func Init() error { return nil }

// Quit performs process-wide teardown, the counterpart to Init.
func Quit() {}

// VersionGet returns this implementation's version triple.
func VersionGet() (major, minor, micro int) {
	return versionMajor, versionMinor, versionMicro
}

// Create builds a new interpreter Context per spec, wiring its operator
// table, binding systemdict, and — if spec names a device — constructing
// and binding it (spec.md §4.9, §6).
func Create(spec CreateSpec) (*Context, error) {
	if spec.Config != nil {
		if err := spec.ApplyConfig(spec.Config); err != nil {
			return nil, err
		}
	}
	localSize := spec.LocalMemSize
	if localSize == 0 {
		localSize = defaultLocalMem
	}
	globalSize := spec.GlobalMemSize
	if globalSize == 0 {
		globalSize = defaultGlobalMem
	}

	inner, err := pscontext.New(localSize, globalSize)
	if err != nil {
		return nil, err
	}
	inner.MsgLevel = spec.MsgLevel
	inner.ShowpageMode = spec.ShowpageMode

	table := optable.NewTable()
	if err := ops.RegisterAll(inner, table); err != nil {
		return nil, err
	}

	loop := exec.New(table)
	inner.Runner = loop

	if spec.DeviceSpec != "" {
		if err := bindDevice(inner, spec); err != nil {
			return nil, err
		}
	}

	return &Context{inner: inner, loop: loop, table: table}, nil
}

func bindDevice(ctx *pscontext.Context, spec CreateSpec) error {
	family, mode, _ := strings.Cut(spec.DeviceSpec, ":")
	width, height := spec.Width, spec.Height
	if width == 0 || height == 0 {
		width, height = 612, 792 // US Letter @ 72 DPI, spec.md §6 default
	}

	inst, err := device.New(family, mode, width, height)
	if err != nil {
		return err
	}
	devDict, err := device.CreateDict(ctx, inst)
	if err != nil {
		return err
	}

	binding := &pscontext.DeviceBinding{
		Family:   family,
		Mode:     mode,
		DevDict:  devDict,
		Width:    width,
		Height:   height,
		Instance: inst,
	}
	switch spec.OutputType {
	case OutputFilename:
		binding.OutputIsFile = true
		binding.OutputPath = spec.OutputPath
	case OutputBuffer:
		binding.OutputBuffer = spec.OutputPtr
	}
	ctx.Device = binding
	return nil
}

// RunResult reports how a Run call ended (spec.md §6 `run` return value: 0
// terminated, 1 yielded).
type RunResult struct {
	// Yielded is true if execution suspended at a `showpage` under
	// ShowpageReturn mode; call Run again with InputResume to continue.
	// The bytes written through CreateSpec.OutputPtr (when OutputType ==
	// OutputBuffer) are valid until the next showpage or until Destroy
	// (spec.md §9 Open Question resolution, DESIGN.md).
	Yielded bool
}

// Run feeds input (source text or a filename, per kind) through the
// scanner and execution loop until the program finishes or yields
// (spec.md §6).
func (c *Context) Run(kind InputKind, input string) (RunResult, error) {
	ctx := c.inner
	if ctx.Aborted {
		return RunResult{}, fmt.Errorf("xpost: context aborted")
	}

	switch kind {
	case InputResume:
		ctx.Yielded = false
	case InputFilename:
		text, err := xpostio.DecodeFile(input)
		if err != nil {
			return RunResult{}, err
		}
		if err := c.feed(text); err != nil {
			return RunResult{}, err
		}
	case InputString:
		if err := c.feed(input); err != nil {
			return RunResult{}, err
		}
	default:
		return RunResult{}, fmt.Errorf("xpost: unknown input kind %d", kind)
	}

	if err := c.loop.Run(ctx); err != nil {
		return RunResult{}, err
	}
	if ctx.Aborted {
		return RunResult{}, fmt.Errorf("xpost: interpreter aborted")
	}
	return RunResult{Yielded: ctx.Yielded}, nil
}

// feed opens text as an executable file Object and pushes it onto the
// execution stack, the same as any PostScript-visible file: internal/exec's
// stepFile then drip-feeds it one token at a time, so STRING/FILENAME
// top-level input goes through exactly the same classify-and-dispatch path
// (and the same procedure-literal-is-data rule) as a procedure body does.
func (c *Context) feed(text string) error {
	f, err := c.inner.OpenFile([]byte(text))
	if err != nil {
		return err
	}
	c.inner.Execution.Push(f)
	return nil
}

// Destroy releases the Context. After Destroy, Run must not be called
// again; any buffer handed back via OutputBuffer is no longer valid.
func (c *Context) Destroy() {
	c.inner.Quitting = true
	c.inner.Aborted = true
}

// Diagnostics returns the JSON trace snapshot for the Context's current
// state (SPEC_FULL.md §6.3); callers typically only do this under
// TRACING, but it's safe to call at any message level.
func (c *Context) Diagnostics() (string, error) {
	return diag.TraceJSON(c.inner)
}
