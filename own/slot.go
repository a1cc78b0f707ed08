package own

import (
	"github.com/wippyai/ownref/errors"
)

// Slot is caller-supplied backing storage for one value of type T.
//
// The zero value is a vacant slot ready for use:
//
//	var s own.Slot[Conn]
//	h := s.Fill(conn)
//
// A slot never destroys the value it holds; that responsibility belongs to
// the handle returned by Fill. Once that handle is fully consumed the slot
// is vacant again and may be refilled.
type Slot[T any] struct {
	value  T
	anchor Anchor
}

// NewSlot allocates a vacant slot. Equivalent to declaring a zero-value
// Slot; useful when the slot must escape the declaring expression.
func NewSlot[T any]() *Slot[T] {
	return &Slot[T]{}
}

// Fill writes value into the slot and returns the handle that owns it.
// Filling a slot whose previous handle has not been consumed panics.
func (s *Slot[T]) Fill(value T) Handle[T] {
	if s.anchor.filled {
		panic(errors.RefillOccupied(errors.PhaseFill, typeName[T]()))
	}
	s.value = value
	s.anchor.filled = true
	return Handle[T]{ref: &s.value, anchor: &s.anchor, gen: s.anchor.gen}
}

// Filled reports whether the slot currently holds a live value.
func (s *Slot[T]) Filled() bool {
	return s.anchor.filled
}

// Slots2 returns two vacant slots in one call.
func Slots2[A, B any]() (*Slot[A], *Slot[B]) {
	return &Slot[A]{}, &Slot[B]{}
}

// Slots3 returns three vacant slots in one call.
func Slots3[A, B, C any]() (*Slot[A], *Slot[B], *Slot[C]) {
	return &Slot[A]{}, &Slot[B]{}, &Slot[C]{}
}

// Slots4 returns four vacant slots in one call.
func Slots4[A, B, C, D any]() (*Slot[A], *Slot[B], *Slot[C], *Slot[D]) {
	return &Slot[A]{}, &Slot[B]{}, &Slot[C]{}, &Slot[D]{}
}
