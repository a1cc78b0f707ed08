// Package fnown implements call-by-value dispatch for move-only callables
// held behind ownership handles.
//
// A FnOwn is consumed by its single invocation, the way a handle's value is
// consumed by Drop. Holding one in a cell and widening the handle erases
// the concrete callable while keeping it invocable exactly once:
//
//	var s own.Slot[fnown.Func[fnown.Args1[int], string]]
//	h := own.Widen[fnown.FnOwn[fnown.Args1[int], string]](
//		s.Fill(fnown.F1(func(n int) string { return strconv.Itoa(n) })),
//	)
//	out := fnown.Call1(h, 42) // "42"; h is consumed
//
// Call is the canonical tuple-taking entry point; the arity-numbered
// wrappers (Call0 through Call4, F0 through F4, Args0 through Args4) are
// ergonomic sugar that funnels into it. Four arguments is a cutoff, not a
// semantic limit: wider calls pack their arguments into a struct and use
// Call directly.
//
// Invocation follows a disarm-then-call protocol: Call first vacates the
// cell, logically moving the callable, and only then dispatches through
// the storage pointer. The handle is therefore already dead during the
// call, and a second Call on any copy of it panics rather than
// double-invoking. The storage must not be refilled until the call
// returns; Call is the one place the library reads a cell it has already
// vacated.
package fnown
