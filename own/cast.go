package own

import (
	"github.com/wippyai/ownref/errors"
)

// Widen converts a concrete handle into a handle over interface I at the
// same storage: dismantle, re-type, rebuild. No value is copied or moved;
// the widened handle's Borrow dispatches through the stored value's
// address.
//
// I must be satisfied by *T (a value-receiver method set promotes, so any T
// implementing I qualifies). Widening to an unsatisfied interface is a
// caller bug and panics before the handle is consumed, so ownership is
// never lost to a bad widen.
func Widen[I any, T any](h Handle[T]) Handle[I] {
	h.mustLive(errors.PhaseWiden)
	if _, ok := h.ref.(I); !ok {
		panic(errors.TypeMismatch(errors.PhaseWiden, h.goType(), typeName[I]()))
	}
	return FromRaw[I](h.IntoRaw())
}

// Downcast attempts to recover a concrete handle from an erased one by
// comparing runtime types. On success the original handle is consumed and
// the returned handle owns the value. On mismatch it reports ok=false and
// the original handle is untouched: still live, still usable, still
// droppable exactly once. This is the library's one recoverable error.
func Downcast[U any, T any](h Handle[T]) (Handle[U], bool) {
	h.mustLive(errors.PhaseDowncast)
	ptr, ok := h.ref.(*U)
	if !ok {
		return Handle[U]{}, false
	}
	r := h.IntoRaw()
	return Handle[U]{ref: ptr, anchor: r.anchor, gen: r.gen}, true
}
