package fnown

import (
	"github.com/wippyai/ownref/own"
)

// FnOwn is a callable consumed by its single invocation. It is the
// dispatch protocol for move-only closures: the erased interface exposes
// one tuple-taking operation, and the handle machinery guarantees it runs
// at most once.
type FnOwn[A, R any] interface {
	CallOwn(args A) R
}

// Func adapts a tuple-taking closure to FnOwn.
type Func[A, R any] func(A) R

// CallOwn invokes the closure.
func (f Func[A, R]) CallOwn(args A) R { return f(args) }

// Call invokes the erased callable held by h exactly once, consuming h.
// An erased value cannot be moved out of its cell, so Call dismantles the
// handle, vacates the cell, and dispatches through the storage pointer
// immediately; the handle is disarmed before the callable runs, so even a
// callable that panics cannot be invoked twice. Works on pinned cells too:
// vacating clears the present flag, leaving the cell's destructor inert.
func Call[A, R any](h own.Handle[FnOwn[A, R]], args A) R {
	r := h.IntoRaw()
	f, ok := r.Ptr().(FnOwn[A, R])
	if !ok {
		// The cell was declared over the interface type itself rather
		// than widened from a concrete callable.
		f = *r.Ptr().(*FnOwn[A, R])
	}
	r.Consume()
	return f.CallOwn(args)
}

// CallFunc is Call for a handle that was never widened.
func CallFunc[A, R any](h own.Handle[Func[A, R]], args A) R {
	return h.Extract()(args)
}

// Argument tuples for the arity-numbered entry points.

// Args0 is the empty argument tuple.
type Args0 struct{}

// Args1 packs one argument.
type Args1[A1 any] struct{ V1 A1 }

// Args2 packs two arguments.
type Args2[A1, A2 any] struct {
	V1 A1
	V2 A2
}

// Args3 packs three arguments.
type Args3[A1, A2, A3 any] struct {
	V1 A1
	V2 A2
	V3 A3
}

// Args4 packs four arguments.
type Args4[A1, A2, A3, A4 any] struct {
	V1 A1
	V2 A2
	V3 A3
	V4 A4
}

// F0 adapts a nullary closure.
func F0[R any](f func() R) Func[Args0, R] {
	return func(Args0) R { return f() }
}

// F1 adapts a unary closure.
func F1[A1, R any](f func(A1) R) Func[Args1[A1], R] {
	return func(a Args1[A1]) R { return f(a.V1) }
}

// F2 adapts a binary closure.
func F2[A1, A2, R any](f func(A1, A2) R) Func[Args2[A1, A2], R] {
	return func(a Args2[A1, A2]) R { return f(a.V1, a.V2) }
}

// F3 adapts a ternary closure.
func F3[A1, A2, A3, R any](f func(A1, A2, A3) R) Func[Args3[A1, A2, A3], R] {
	return func(a Args3[A1, A2, A3]) R { return f(a.V1, a.V2, a.V3) }
}

// F4 adapts a four-argument closure.
func F4[A1, A2, A3, A4, R any](f func(A1, A2, A3, A4) R) Func[Args4[A1, A2, A3, A4], R] {
	return func(a Args4[A1, A2, A3, A4]) R { return f(a.V1, a.V2, a.V3, a.V4) }
}

// Call0 invokes a nullary erased callable, consuming h.
func Call0[R any](h own.Handle[FnOwn[Args0, R]]) R {
	return Call(h, Args0{})
}

// Call1 invokes a unary erased callable, consuming h.
func Call1[A1, R any](h own.Handle[FnOwn[Args1[A1], R]], a1 A1) R {
	return Call(h, Args1[A1]{a1})
}

// Call2 invokes a binary erased callable, consuming h.
func Call2[A1, A2, R any](h own.Handle[FnOwn[Args2[A1, A2], R]], a1 A1, a2 A2) R {
	return Call(h, Args2[A1, A2]{a1, a2})
}

// Call3 invokes a ternary erased callable, consuming h.
func Call3[A1, A2, A3, R any](h own.Handle[FnOwn[Args3[A1, A2, A3], R]], a1 A1, a2 A2, a3 A3) R {
	return Call(h, Args3[A1, A2, A3]{a1, a2, a3})
}

// Call4 invokes a four-argument erased callable, consuming h.
func Call4[A1, A2, A3, A4, R any](h own.Handle[FnOwn[Args4[A1, A2, A3, A4], R]], a1 A1, a2 A2, a3 A3, a4 A4) R {
	return Call(h, Args4[A1, A2, A3, A4]{a1, a2, a3, a4})
}

// Hold fills a hidden cell with an erased view of f and returns the handle.
// Sugar for the Slot-declare / Fill / Widen dance when the callable's
// lifetime fits the caller's scope anyway.
func Hold[A, R any](f Func[A, R]) own.Handle[FnOwn[A, R]] {
	s := own.NewSlot[Func[A, R]]()
	return own.Widen[FnOwn[A, R]](s.Fill(f))
}
