// Package own implements storage cells and the move-only ownership handles
// over them.
//
// # Cells and Handles
//
// A Slot is caller-supplied backing storage for one value. Filling a vacant
// slot yields a Handle, which owns the value but not the storage:
//
//	var cell own.Slot[Conn]
//	h := cell.Fill(conn)
//	h.Borrow().Ping()
//	h.Drop() // runs conn's destructor; the cell is vacant and reusable
//
// The slot itself is inert: it never destroys the value it holds. All
// destruction responsibility lives in the handle (see the pin package for
// the one variant where storage cleans up after a leaked handle).
//
// # Move Semantics
//
// Go cannot forbid copying a Handle, so ownership transfer is enforced at
// runtime instead: every cell carries a generation counter, every handle a
// stamp of the generation it was minted under, and every consuming
// operation (Drop, Extract, IntoRaw, Widen, a successful Downcast) bumps
// the counter. Whichever copy of a handle consumes first wins; any later
// use of a stale copy panics with a structured *errors.Error.
//
// # Widening and Downcasting
//
// Widen converts Handle[T] to Handle[I] for an interface I satisfied by
// *T, preserving the backing storage; no value is copied or moved. Downcast
// reverses the erasure with a runtime type check:
//
//	h := cell.Fill(file)                  // Handle[File]
//	r := own.Widen[io.Reader](h)          // Handle[io.Reader], same storage
//	f, ok := own.Downcast[File](r)        // ok: back to Handle[File]
//
// A failed downcast reports ok=false and leaves the original handle live;
// it is the only recoverable error in the package.
//
// # Low-Level Surface
//
// IntoRaw/FromRaw and Bind/BindFlagged expose the address-plus-anchor
// representation so that cooperating storage (pin.Cell, the arena) can mint
// handles over memory it manages. Misusing them panics; they exist for
// storage implementations, not for everyday callers.
package own
