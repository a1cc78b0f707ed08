package own

import (
	"fmt"

	"github.com/wippyai/ownref/errors"
)

// Raw is the dismantled form of a handle: the storage address, the anchor,
// and the generation stamp carried over to whichever handle is rebuilt from
// it. IntoRaw and FromRaw are exact inverses; the pair exists so that view
// conversions (Widen, Downcast) and cooperating storage can re-type a
// handle without moving the value.
type Raw struct {
	ptr    any
	anchor *Anchor
	gen    uint64
}

// Ptr returns the raw storage address. Its dynamic type is the concrete
// pointer type of the backing cell.
func (r Raw) Ptr() any { return r.ptr }

// Anchor returns the ownership bookkeeping block of the backing cell.
func (r Raw) Anchor() *Anchor { return r.anchor }

// IntoRaw disarms the handle and returns its raw parts. The value stays
// live in its cell; responsibility for it now rides with the Raw, and the
// original handle is stale.
func (h Handle[T]) IntoRaw() Raw {
	h.mustLive(errors.PhaseBind)
	return Raw{
		ptr:    h.ref,
		anchor: h.anchor,
		gen:    h.anchor.transfer(),
	}
}

// FromRaw rebuilds a handle from raw parts, the inverse of IntoRaw. The
// requested view type must be satisfiable by the stored value's pointer;
// anything else is a caller bug and panics.
func FromRaw[T any](r Raw) Handle[T] {
	if r.anchor == nil || r.ptr == nil {
		panic(errors.NilStorage(errors.PhaseBind, "raw handle missing storage or anchor"))
	}
	if r.gen != r.anchor.gen {
		panic(errors.UseAfterMove(errors.PhaseBind, typeName[T](), r.gen, r.anchor.gen))
	}
	if !r.anchor.filled {
		panic(errors.VacantCell(errors.PhaseBind, typeName[T]()))
	}
	if !viewable[T](r.ptr) {
		panic(errors.TypeMismatch(errors.PhaseBind, goTypeOf(r.ptr), typeName[T]()))
	}
	return Handle[T]{ref: r.ptr, anchor: r.anchor, gen: r.gen}
}

// Consume vacates the backing cell without running the destructor, marking
// the value as moved. In flagged mode the present flag is cleared, so a
// pinned cell's own destructor becomes inert. The storage address in r
// stays valid only until the cell is reused: Consume exists for callers
// that finish with the value before control returns, such as call-by-value
// dispatch of an erased callable, which cannot copy the value out.
func (r Raw) Consume() {
	if r.anchor == nil {
		panic(errors.NilStorage(errors.PhaseExtract, "raw handle missing anchor"))
	}
	if r.gen != r.anchor.gen {
		panic(errors.UseAfterMove(errors.PhaseExtract, goTypeOf(r.ptr), r.gen, r.anchor.gen))
	}
	if !r.anchor.filled {
		panic(errors.VacantCell(errors.PhaseExtract, goTypeOf(r.ptr)))
	}
	flag := r.anchor.flag
	r.anchor.consume()
	if flag != nil {
		*flag = false
	}
}

// Bind is the low-level plain-mode constructor: it adopts ptr, which must
// address a live, exclusively-owned value, into a fresh handle tracked by
// anchor. The anchor must be vacant; binding over a live value panics.
//
// Ordinary callers want Slot.Fill. Bind exists for storage implementations
// that manage their own memory.
func Bind[T any](ptr *T, anchor *Anchor) Handle[T] {
	if ptr == nil || anchor == nil {
		panic(errors.NilStorage(errors.PhaseBind, "nil value pointer or anchor"))
	}
	if anchor.filled {
		panic(errors.RefillOccupied(errors.PhaseBind, typeName[T]()))
	}
	anchor.filled = true
	anchor.flag = nil
	return Handle[T]{ref: ptr, anchor: anchor, gen: anchor.gen}
}

// BindFlagged is the low-level flagged-mode constructor used by pinned
// cells. flag must point at the cell's present flag, already set for the
// value being adopted; the handle clears it on Drop so the cell's own
// destructor becomes inert.
func BindFlagged[T any](ptr *T, anchor *Anchor, flag *bool) Handle[T] {
	if ptr == nil || anchor == nil {
		panic(errors.NilStorage(errors.PhaseBind, "nil value pointer or anchor"))
	}
	if flag == nil {
		panic(errors.BadDropMode("flagged bind requires a present flag"))
	}
	if !*flag {
		panic(errors.BadDropMode("present flag not set for the value being adopted"))
	}
	if anchor.filled {
		panic(errors.RefillOccupied(errors.PhaseBind, typeName[T]()))
	}
	anchor.filled = true
	anchor.flag = flag
	return Handle[T]{ref: ptr, anchor: anchor, gen: anchor.gen}
}

func viewable[T any](ptr any) bool {
	if _, ok := ptr.(*T); ok {
		return true
	}
	_, ok := ptr.(T)
	return ok
}

func goTypeOf(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", v)
}
