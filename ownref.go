package ownref

// Dropper is optionally implemented by values that need cleanup when their
// owning handle is dropped.
type Dropper interface {
	Drop()
}

// DropFunc adapts a plain function to the Dropper interface.
type DropFunc func()

// Drop calls f.
func (f DropFunc) Drop() { f() }

// Finalize runs v's destructor if it has one and reports whether it did.
// Handles call this with a pointer into their backing storage, so both
// value- and pointer-receiver Drop methods are reached.
func Finalize(v any) bool {
	if d, ok := v.(Dropper); ok {
		d.Drop()
		return true
	}
	return false
}
