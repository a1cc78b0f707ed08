// Package ownref provides move-only ownership handles over caller-supplied storage.
//
// A value lives in a storage cell declared by its owning scope; the handle
// produced by filling the cell carries the responsibility to destroy that
// value exactly once. The cell itself stays inert byte storage: it never
// runs a destructor on its own (the pinned variant is the one exception).
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	ownref/          Root package with the Dropper destructor capability
//	├── own/         Storage cells (Slot), ownership handles, widening, downcast
//	├── pin/         Pinned cells with runtime drop flags for leak safety
//	├── fnown/       Call-by-value dispatch for move-only erased callables
//	├── arena/       Storage-cell allocator with free-list reuse and observers
//	├── errors/      Structured error types carried by contract-violation panics
//	└── cmd/owncell/ Scripted and interactive lifecycle playground
//
// # Quick Start
//
// Declare a cell, fill it, and let the handle own the value:
//
//	var cell own.Slot[Conn]
//	h := cell.Fill(conn)
//	defer h.Drop() // runs conn.Drop() exactly once
//
//	h.Borrow().Ping()
//
// Or move the value back out, disarming the handle:
//
//	conn := h.Extract() // destructor will NOT run; caller owns conn again
//
// # Ownership Discipline
//
// Each cell carries a generation counter bumped on every ownership
// transition. A handle is valid only while its stamp matches the cell's
// generation, so double drops, use-after-move, and refills of an occupied
// cell all fail fast with a panic carrying a structured *errors.Error.
// The only recoverable outcome in the library is a downcast type mismatch,
// which leaves the original handle untouched.
//
// # Leak Safety
//
// A plain cell trusts its handle: if the handle is leaked, the value's
// destructor never runs. When that is not acceptable, pin.Cell keeps a
// runtime present flag and destroys a still-present value itself when the
// cell is dropped, guaranteeing the value dies no later than its storage.
//
// # Thread Safety
//
// Cells and handles are not synchronized: a filled cell's value is
// exclusively owned by its one live handle, and that single-owner
// discipline is the entire concurrency model. A handle may be handed to
// another goroutine exactly when the held value itself may. The arena
// package, which shares an allocator between goroutines, carries its own
// lock, as does everything feeding the observer fan-out.
package ownref
