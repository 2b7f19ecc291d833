// Package stack implements the interpreter's segmented, growable stacks
// (spec.md §3.4): the operand, execution, dictionary and graphics-state
// stacks are each one of these, holding object.Object values.
package stack

import "github.com/cwbudde/go-xpost/internal/object"

// SegmentSize is the typical capacity of one stack segment before a new
// segment is allocated (spec.md §3.4: "typical segment: several hundred
// Objects").
const SegmentSize = 256

// segment is one fixed-capacity chunk of a Stack's backing chain.
type segment struct {
	items [SegmentSize]object.Object
	n     int
	prev  *segment
}

// Stack is a linked chain of fixed-capacity segments. Push appends within
// the current segment, allocating a new one at the boundary; pop truncates,
// freeing an empty trailing segment back to its predecessor.
type Stack struct {
	top   *segment
	depth int
}

// New returns an empty Stack with one segment pre-allocated.
func New() *Stack {
	return &Stack{top: &segment{}}
}

// Depth returns the number of objects currently on the stack.
func (s *Stack) Depth() int { return s.depth }

// Push appends o to the top of the stack, allocating a new segment at
// capacity so no data is lost at the boundary (spec.md §8 boundary property).
func (s *Stack) Push(o object.Object) {
	if s.top.n == SegmentSize {
		s.top = &segment{prev: s.top}
	}
	s.top.items[s.top.n] = o
	s.top.n++
	s.depth++
}

// Pop removes and returns the top object. ok is false if the stack is empty.
func (s *Stack) Pop() (object.Object, bool) {
	if s.depth == 0 {
		return object.Object{}, false
	}
	if s.top.n == 0 {
		s.top = s.top.prev
	}
	s.top.n--
	s.depth--
	return s.top.items[s.top.n], true
}

// Peek returns the top object without removing it.
func (s *Stack) Peek() (object.Object, bool) {
	if s.depth == 0 {
		return object.Object{}, false
	}
	seg := s.top
	if seg.n == 0 {
		seg = seg.prev
	}
	return seg.items[seg.n-1], true
}

// PeekN returns the top n objects, bottom-to-top (index 0 is deepest of the
// n). ok is false if fewer than n objects are present. Used by the operator
// dispatcher (spec.md §4.5 step 1) to inspect candidate operands without
// popping them.
func (s *Stack) PeekN(n int) ([]object.Object, bool) {
	if n > s.depth {
		return nil, false
	}
	out := make([]object.Object, n)
	seg := s.top
	local := seg.n
	for i := n - 1; i >= 0; i-- {
		if local == 0 {
			seg = seg.prev
			local = seg.n
		}
		local--
		out[i] = seg.items[local]
	}
	return out, true
}

// TrimTo truncates the stack back to depth, discarding everything above it.
// Used to restore the operand stack to its pre-dispatch depth when an
// operator returns an error (spec.md §4.5 step 4, §8 invariant).
func (s *Stack) TrimTo(depth int) {
	if depth < 0 {
		depth = 0
	}
	for s.depth > depth {
		s.Pop()
	}
}

// All returns every object on the stack, bottom-to-top. Used for error
// snapshots (spec.md §4.8) and diagnostics; not on any hot path.
func (s *Stack) All() []object.Object {
	out := make([]object.Object, s.depth)
	seg := s.top
	local := seg.n
	for i := s.depth - 1; i >= 0; i-- {
		if local == 0 {
			seg = seg.prev
			local = seg.n
		}
		local--
		out[i] = seg.items[local]
	}
	return out
}

// Clear empties the stack back to a single, empty segment.
func (s *Stack) Clear() {
	s.top = &segment{}
	s.depth = 0
}
