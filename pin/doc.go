// Package pin provides storage cells that destroy their own value when the
// owning handle is leaked.
//
// A plain own.Slot trusts its handle completely: leak the handle and the
// value's destructor never runs. That is usually acceptable, but not when
// something else has observed the value at its address and relies on the
// destructor running before the storage is reclaimed. Cell closes that
// hole with a runtime present flag:
//
//	Empty --Fill--> Filled(flag set)
//	    handle dropped normally: flag cleared, value destroyed, Cell.Drop inert
//	    handle leaked:           flag stays set, Cell.Drop destroys the value
//
// Either way the value is destroyed exactly once, no later than the cell
// itself.
//
// Handles minted by a Cell are flagged (own.DropFlagged): they clear the
// present flag before running the destructor, and they refuse Extract,
// since a pinned value must not move. Mutation goes through Set, which
// replaces the whole value and keeps the flag invariant intact.
package pin
