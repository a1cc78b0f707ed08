package pin

import (
	"reflect"

	"github.com/wippyai/ownref"
	"github.com/wippyai/ownref/errors"
	"github.com/wippyai/ownref/own"
)

// Cell is a storage cell with a present flag and a self-sufficient
// destructor. Unlike own.Slot it is not inert: if its handle never ran,
// dropping the cell destroys the value itself. The zero value is an empty
// cell.
type Cell[T any] struct {
	value   T
	present bool
	anchor  own.Anchor
}

// NewCell allocates an empty pinned cell.
func NewCell[T any]() *Cell[T] {
	return &Cell[T]{}
}

// Fill writes value into the cell, sets the present flag, and returns the
// flagged handle owning the value. Refilling while the flag is still set
// panics: the previous value has to leave through its handle or through
// Drop first.
func (c *Cell[T]) Fill(value T) own.Handle[T] {
	if c.present {
		panic(errors.RefillOccupied(errors.PhaseFill, typeName[T]()))
	}
	c.value = value
	c.present = true
	return own.BindFlagged(&c.value, &c.anchor, &c.present)
}

// Filled reports whether the cell currently holds a live value.
func (c *Cell[T]) Filled() bool {
	return c.present
}

// Peek returns the held value without disturbing ownership, for
// diagnostics and sweep reporting by storage owners. The value stays owned
// by its handle (or by the cell, if the handle was leaked).
func (c *Cell[T]) Peek() (T, bool) {
	if !c.present {
		var zero T
		return zero, false
	}
	return c.value, true
}

// Drop is the cell's own destructor. If the present flag is still set the
// owning handle was leaked, and the cell destroys the value itself; if the
// handle was dropped normally the flag is clear and this is a no-op apart
// from staling any outstanding handle copies. Safe to call more than once,
// and safe to call from a defer alongside normal handle use.
func (c *Cell[T]) Drop() {
	if c.present {
		c.present = false
		ownref.Finalize(&c.value)
	}
	c.anchor.Invalidate()
}

// With fills a pinned cell with value, hands the flagged handle to scope,
// and drops the cell afterwards. The value's destructor runs exactly once
// whether scope drops the handle or leaks it.
func With[T, R any](value T, scope func(own.Handle[T]) R) R {
	c := NewCell[T]()
	defer c.Drop()
	return scope(c.Fill(value))
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
