// Package pscontext implements the interpreter's Context (spec.md §3.5):
// the unit of execution, bundling the two Memory Files, the four stacks,
// the name tables, and the handful of standard dictionaries every
// PostScript program expects to find on the dictionary stack.
package pscontext

import (
	"sync/atomic"

	"github.com/cwbudde/go-xpost/internal/memfile"
	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/runtime"
	"github.com/cwbudde/go-xpost/internal/stack"
)

// defaultDictCapacity sizes systemdict/globaldict/userdict/errordict/$error.
const defaultDictCapacity = 256

// DeviceBinding records the device family and output sink a Context was
// created with (spec.md §4.9, §6). The concrete device logic lives in
// internal/device; pscontext only carries the bookkeeping a Context needs
// to hand back to the embedder.
type DeviceBinding struct {
	Family       string // "raster" or "png"
	Mode         string // rgb/bgr/argb/bgra; empty for png
	DevDict      object.Object
	OutputIsFile bool
	OutputPath   string
	OutputBuffer *[]byte // BUFFEROUT target; written by device Emit
	Width        int
	Height       int

	// Instance holds the internal/device.Instance the embedder created this
	// binding for. Typed as interface{} rather than a concrete device type
	// since internal/device needs pscontext (to read ImgData off the
	// Context) and pscontext must not import it back (spec.md §9's
	// one-directional dependency order).
	Instance interface{}
}

// MsgLevel controls diagnostic verbosity (spec.md §6, §7).
type MsgLevel int

const (
	Quiet MsgLevel = iota
	Verbose
	Tracing
)

// ShowpageMode controls whether `showpage` yields control to the embedder
// (spec.md §5, §6).
type ShowpageMode int

const (
	ShowpageReturn ShowpageMode = iota
	ShowpageNoPause
	ShowpagePause
)

// Context is the unit of interpretation (spec.md §3.5). One Context exists
// per interpreter instance; multiple Contexts may coexist in one process
// (spec.md §9 "Global state"), each with its own Memory Files.
type Context struct {
	Local  *memfile.File
	Global *memfile.File
	Files  *runtime.Files
	Names  *runtime.Names

	Operand    *stack.Stack
	Execution  *stack.Stack
	Dictionary *stack.Stack
	Graphics   *stack.Stack

	SystemDict object.Object
	GlobalDict object.Object
	UserDict   object.Object
	ErrorDict  object.Object
	ErrorState object.Object // the "$error" dict

	System map[string]object.Object // cached system-name Objects

	SaveLevel   int32
	saveStack   []saveRecord
	nextSaveID  int32

	Interrupt int32 // atomic flag, polled between execution-loop steps (spec.md §5)
	Quitting  bool
	Aborted   bool // set on unrecoverable corruption (spec.md §7); Run returns immediately afterward
	Yielded   bool // set by `showpage` under ShowpageReturn (spec.md §4.9 "Suspension points"); cleared by the embedder before resuming

	MsgLevel     MsgLevel
	ShowpageMode ShowpageMode

	Device *DeviceBinding

	openFiles map[uint32]*FileState

	// Runner is set by the top-level wiring once both the Context and the
	// execution loop exist (spec.md §9); control operators use it to drive
	// procedure bodies (if/ifelse/for/repeat/loop/stopped).
	Runner Runner

	loopControl loopControl
}

// New creates a Context with fresh local and global Memory Files, empty
// stacks, and the standard dictionaries bound onto the dictionary stack in
// the order spec.md §3.4 requires: systemdict, globaldict, userdict.
func New(localSize, globalSize int) (*Context, error) {
	ctx := &Context{
		Local:      memfile.New(localSize),
		Global:     memfile.New(globalSize),
		Operand:    stack.New(),
		Execution:  stack.New(),
		Dictionary: stack.New(),
		Graphics:   stack.New(),
	}
	ctx.Files = &runtime.Files{Local: ctx.Local, Global: ctx.Global}
	ctx.Names = runtime.NewNames()
	ctx.System = ctx.Names.InternSystemNames()

	var err error
	if ctx.SystemDict, err = runtime.NewDict(ctx.Files, object.Global, defaultDictCapacity); err != nil {
		return nil, err
	}
	if ctx.GlobalDict, err = runtime.NewDict(ctx.Files, object.Global, defaultDictCapacity); err != nil {
		return nil, err
	}
	if ctx.UserDict, err = runtime.NewDict(ctx.Files, object.Local, defaultDictCapacity); err != nil {
		return nil, err
	}
	if ctx.ErrorDict, err = runtime.NewDict(ctx.Files, object.Local, defaultDictCapacity); err != nil {
		return nil, err
	}
	if ctx.ErrorState, err = runtime.NewDict(ctx.Files, object.Local, 16); err != nil {
		return nil, err
	}

	ctx.Dictionary.Push(ctx.SystemDict)
	ctx.Dictionary.Push(ctx.GlobalDict)
	ctx.Dictionary.Push(ctx.UserDict)

	if err := runtime.DictPut(ctx.Files, ctx.SystemDict, ctx.System["errordict"], ctx.ErrorDict); err != nil {
		return nil, err
	}
	if err := runtime.DictPut(ctx.Files, ctx.SystemDict, ctx.System["$error"], ctx.ErrorState); err != nil {
		return nil, err
	}
	if err := runtime.DictPut(ctx.Files, ctx.SystemDict, ctx.System["userdict"], ctx.UserDict); err != nil {
		return nil, err
	}
	if err := runtime.DictPut(ctx.Files, ctx.SystemDict, ctx.System["globaldict"], ctx.GlobalDict); err != nil {
		return nil, err
	}
	if err := runtime.DictPut(ctx.Files, ctx.ErrorState, ctx.System["newerror"], object.BoolObject(false)); err != nil {
		return nil, err
	}

	return ctx, nil
}

// CurrentDict returns the dict at the top of the dictionary stack —
// "currentdict" in PostScript terms.
func (c *Context) CurrentDict() (object.Object, bool) {
	return c.Dictionary.Peek()
}

// Lookup searches the dictionary stack top-down for name, per spec.md
// §4.6's executable-name resolution rule.
func (c *Context) Lookup(name object.Object) (object.Object, bool, error) {
	frames := c.Dictionary.All()
	for i := len(frames) - 1; i >= 0; i-- {
		known, err := runtime.DictKnown(c.Files, frames[i], name)
		if err != nil {
			return object.Object{}, false, err
		}
		if known {
			v, err := runtime.DictGet(c.Files, frames[i], name)
			return v, true, err
		}
	}
	return object.Object{}, false, nil
}

// SetInterrupt sets or clears the process-wide interrupt flag (spec.md §5).
func (c *Context) SetInterrupt(v bool) {
	var n int32
	if v {
		n = 1
	}
	atomic.StoreInt32(&c.Interrupt, n)
}

// InterruptPending reports whether the interrupt flag is set, clearing it
// as it's consumed (spec.md §4.6 step 3).
func (c *Context) InterruptPending() bool {
	return atomic.SwapInt32(&c.Interrupt, 0) != 0
}
