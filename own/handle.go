package own

import (
	"fmt"
	"reflect"

	"github.com/wippyai/ownref"
	"github.com/wippyai/ownref/errors"
)

// Handle is a move-only ownership view over a value stored in a cell.
//
// A Handle owns the value (it runs the destructor) but not the backing
// storage, which belongs to the declaring scope. Handles are small values;
// passing one around transfers ownership conceptually, and the generation
// stamp makes any stale copy fail fast on its next use.
type Handle[T any] struct {
	// ref is a pointer into the backing storage. Its dynamic type is always
	// the concrete *C of the storage, even when T is an interface view
	// produced by Widen; that is what makes Downcast a plain type assertion.
	ref    any
	anchor *Anchor
	gen    uint64
}

// Live reports whether the handle still owns its value. A handle goes dead
// when it is consumed (Drop, Extract, IntoRaw, Widen, successful Downcast)
// or when its storage is invalidated underneath it.
func (h Handle[T]) Live() bool {
	return h.anchor != nil && h.gen == h.anchor.gen && h.anchor.filled
}

// Mode returns the handle's destruction mode.
func (h Handle[T]) Mode() DropMode {
	if h.anchor != nil && h.anchor.flag != nil {
		return DropFlagged
	}
	return DropPlain
}

// Generation returns the handle's generation stamp.
func (h Handle[T]) Generation() uint64 { return h.gen }

// Borrow returns the held value without consuming the handle. For a
// concrete T this copies the value out of storage; for an interface T it
// returns the interface view over the stored value's address, so method
// calls dispatch in place.
func (h Handle[T]) Borrow() T {
	h.mustLive(errors.PhaseBorrow)
	return h.view(errors.PhaseBorrow)
}

// Ptr returns the address of the held value for in-place mutation. Only
// concrete handles have a typed address; calling Ptr on a widened handle
// panics (Downcast first).
func (h Handle[T]) Ptr() *T {
	h.mustLive(errors.PhaseBorrow)
	p, ok := h.ref.(*T)
	if !ok {
		panic(errors.TypeMismatch(errors.PhaseBorrow, h.goType(), "*"+typeName[T]()))
	}
	return p
}

// Set replaces the held value wholesale, destroying the previous value
// first. This is the only mutation offered on flagged handles: replacing
// the whole value keeps the present-flag invariant intact, where exposing
// field-level writes through the erased view could not.
func (h Handle[T]) Set(v T) {
	h.mustLive(errors.PhaseFill)
	p, ok := h.ref.(*T)
	if !ok {
		panic(errors.TypeMismatch(errors.PhaseFill, h.goType(), "*"+typeName[T]()))
	}
	ownref.Finalize(p)
	*p = v
}

// Extract moves the value out of the handle, disarming the destructor
// without running it. The caller owns the returned value; the backing cell
// becomes vacant and reusable. Extracting from a pinned cell panics, since
// a pinned value must not move.
//
// Only concrete handles can extract: an interface view cannot copy the
// erased value out of storage, so returning it would alias whatever the
// cell holds next. Extracting a widened handle panics (Downcast first);
// erased callables go through fnown.Call, which consumes in place.
func (h Handle[T]) Extract() T {
	h.mustLive(errors.PhaseExtract)
	if h.anchor.flag != nil {
		panic(errors.PinnedMove(h.goType()))
	}
	p, ok := h.ref.(*T)
	if !ok {
		panic(errors.TypeMismatch(errors.PhaseExtract, h.goType(), "*"+typeName[T]()))
	}
	v := *p
	h.anchor.consume()
	return v
}

// Drop destroys the held value exactly once and vacates the cell. In
// flagged mode the storage's present flag is cleared first, so the pinned
// cell's own destructor becomes inert; one destruction path serves both
// modes via the nil check on the flag.
func (h Handle[T]) Drop() {
	h.mustLive(errors.PhaseDrop)
	flag := h.anchor.flag
	h.anchor.consume()
	if flag != nil {
		*flag = false
	}
	ownref.Finalize(h.ref)
}

// view resolves the T-typed view of the stored value. ref is *C; when T is
// the concrete C the first assertion hits, when T is an interface the
// second does (the pointer carries the full method set).
func (h Handle[T]) view(phase errors.Phase) T {
	if p, ok := h.ref.(*T); ok {
		return *p
	}
	if v, ok := h.ref.(T); ok {
		return v
	}
	panic(errors.TypeMismatch(phase, h.goType(), typeName[T]()))
}

func (h Handle[T]) mustLive(phase errors.Phase) {
	if h.anchor == nil {
		panic(errors.NilStorage(phase, "zero-value handle"))
	}
	if h.gen != h.anchor.gen {
		panic(errors.UseAfterMove(phase, h.goType(), h.gen, h.anchor.gen))
	}
	if !h.anchor.filled {
		panic(errors.VacantCell(phase, h.goType()))
	}
}

func (h Handle[T]) goType() string {
	return fmt.Sprintf("%T", h.ref)
}

// With fills a hidden cell with value, hands the resulting handle to scope,
// and drops it afterwards if scope has not consumed it. Use it when the
// handle's lifetime fits inside one call; declare a Slot explicitly when it
// does not.
func With[T, R any](value T, scope func(Handle[T]) R) R {
	var s Slot[T]
	h := s.Fill(value)
	defer func() {
		if h.Live() {
			h.Drop()
		}
	}()
	return scope(h)
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
