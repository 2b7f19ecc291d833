// Package pserrors implements the interpreter's error system (spec.md
// §4.8, §7): the fixed taxonomy of error names, the protocol for
// populating $error and transferring to errordict, and fatal-abort
// handling for unrecoverable Memory File corruption.
package pserrors

import (
	"fmt"

	"github.com/cwbudde/go-xpost/internal/object"
	"github.com/cwbudde/go-xpost/internal/pscontext"
	"github.com/cwbudde/go-xpost/internal/runtime"
)

// Name is one of the 27 stable error names from spec.md §7. Operator bodies
// return a Name (as an error) instead of an arbitrary error value so the
// dispatcher can look it up in errordict by its exact PostScript spelling.
type Name string

func (n Name) Error() string { return string(n) }

// The full taxonomy, spec.md §7.
const (
	DictFull            Name = "dictfull"
	DictStackOverflow    Name = "dictstackoverflow"
	DictStackUnderflow   Name = "dictstackunderflow"
	ExecStackOverflow    Name = "execstackoverflow"
	HandleError          Name = "handleerror"
	Interrupt            Name = "interrupt"
	InvalidAccess        Name = "invalidaccess"
	InvalidExit          Name = "invalidexit"
	InvalidFileAccess    Name = "invalidfileaccess"
	InvalidFont          Name = "invalidfont"
	InvalidRestore       Name = "invalidrestore"
	IOError              Name = "ioerror"
	LimitCheck           Name = "limitcheck"
	NoCurrentPoint       Name = "nocurrentpoint"
	RangeCheck           Name = "rangecheck"
	StackOverflow        Name = "stackoverflow"
	StackUnderflow       Name = "stackunderflow"
	SyntaxError          Name = "syntaxerror"
	Timeout              Name = "timeout"
	TypeCheck            Name = "typecheck"
	Undefined            Name = "undefined"
	UndefinedFilename    Name = "undefinedfilename"
	UndefinedResource    Name = "undefinedresource"
	UndefinedResult      Name = "undefinedresult"
	UnmatchedMark        Name = "unmatchedmark"
	Unregistered         Name = "unregistered"
	VMError              Name = "VMerror"
)

// New builds an error carrying name plus a formatted detail message, as
// "name: detail"; with an empty format it returns name itself.
func New(name Name, format string, args ...interface{}) error {
	if format == "" {
		return name
	}
	return fmt.Errorf("%s: %s", name, fmt.Sprintf(format, args...))
}

// NameOf extracts the taxonomy Name from an error produced by New, returned
// bare, or whose message (up to its first colon) spells a taxonomy name,
// falling back to "unregistered" for anything else (spec.md §7: truly
// unexpected conditions still need a catalog name to signal).
func NameOf(err error) Name {
	if n, ok := err.(Name); ok {
		return n
	}
	msg := err.Error()
	for i, c := range msg {
		if c == ':' {
			msg = msg[:i]
			break
		}
	}
	switch n := Name(msg); n {
	case DictFull, DictStackOverflow, DictStackUnderflow, ExecStackOverflow,
		HandleError, Interrupt, InvalidAccess, InvalidExit, InvalidFileAccess,
		InvalidFont, InvalidRestore, IOError, LimitCheck, NoCurrentPoint,
		RangeCheck, StackOverflow, StackUnderflow, SyntaxError, Timeout,
		TypeCheck, Undefined, UndefinedFilename, UndefinedResource,
		UndefinedResult, UnmatchedMark, Unregistered, VMError:
		return n
	}
	return Unregistered
}

// Signal implements spec.md §4.8's four-step protocol: populate $error,
// push errordict's handler for name onto the execution stack, and return
// control to the execution loop so it resumes by running the handler.
//
// culprit is the operator (or other) Object that raised the error, used to
// populate $error's "command" slot; it may be the zero Object if no operator
// was involved (e.g. a syntax error from the scanner).
func Signal(ctx *pscontext.Context, err error, culprit object.Object) error {
	name := NameOf(err)

	if ferr := runtime.DictPut(ctx.Files, ctx.ErrorState, ctx.System["newerror"], object.BoolObject(true)); ferr != nil {
		return fatalf(ctx, "cannot populate $error/newerror: %v", ferr)
	}
	errNameObj := ctx.Names.ConsName(object.Global, string(name))
	if ferr := runtime.DictPut(ctx.Files, ctx.ErrorState, ctx.System["errorname"], errNameObj); ferr != nil {
		return fatalf(ctx, "cannot populate $error/errorname: %v", ferr)
	}
	if ferr := runtime.DictPut(ctx.Files, ctx.ErrorState, ctx.System["command"], culprit); ferr != nil {
		return fatalf(ctx, "cannot populate $error/command: %v", ferr)
	}

	known, ferr := runtime.DictKnown(ctx.Files, ctx.ErrorDict, errNameObj)
	if ferr != nil {
		return fatalf(ctx, "cannot query errordict: %v", ferr)
	}
	if !known {
		// No handler installed for this error name: nothing more to do;
		// $error still records it.
		return nil
	}
	handler, ferr := runtime.DictGet(ctx.Files, ctx.ErrorDict, errNameObj)
	if ferr != nil {
		return fatalf(ctx, "cannot load handler: %v", ferr)
	}
	ctx.Execution.Push(handler)
	return nil
}

// fatalf marks the Context non-executable (spec.md §7: "Truly fatal
// conditions ... abort the loop and mark the Context non-executable").
func fatalf(ctx *pscontext.Context, format string, args ...interface{}) error {
	ctx.Aborted = true
	return fmt.Errorf("fatal: "+format, args...)
}
