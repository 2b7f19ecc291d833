package pscontext

import "github.com/cwbudde/go-xpost/internal/object"

// Runner lets control operators (if/ifelse/for/repeat/loop/forall/stopped,
// implemented in internal/ops) drive a procedure to completion without
// internal/pscontext importing the execution loop package, which imports
// pscontext itself (spec.md §4.6, §9 "one-directional dependency order").
type Runner interface {
	RunProc(ctx *Context, proc object.Object) error
}

// loopControl tracks the two unwind signals spec.md §4.6/§7 describe:
// `exit` unwinds to the nearest enclosing for/repeat/loop; `stop` unwinds to
// the nearest enclosing `stopped`. Neither is a PostScript error (no
// errordict handler runs), so they're tracked as plain flags rather than
// routed through pserrors.
type loopControl struct {
	exitRequested bool
	stopRequested bool
}

// RequestExit implements the `exit` operator.
func (c *Context) RequestExit() { c.loopControl.exitRequested = true }

// ConsumeExit reports and clears a pending exit request; called by the
// innermost for/repeat/loop after each iteration.
func (c *Context) ConsumeExit() bool {
	v := c.loopControl.exitRequested
	c.loopControl.exitRequested = false
	return v
}

// RequestStop implements the `stop` operator.
func (c *Context) RequestStop() { c.loopControl.stopRequested = true }

// StopPending reports a pending stop without clearing it, so nested
// loop/if bodies keep unwinding past it.
func (c *Context) StopPending() bool { return c.loopControl.stopRequested }

// ConsumeStop reports and clears a pending stop; called by `stopped`, the
// only operator that's supposed to absorb it.
func (c *Context) ConsumeStop() bool {
	v := c.loopControl.stopRequested
	c.loopControl.stopRequested = false
	return v
}
