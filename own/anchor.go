package own

// DropMode selects how a handle's destruction cooperates with its storage.
type DropMode uint8

const (
	// DropPlain runs the value's destructor and nothing else. The backing
	// cell is trusted to be inert.
	DropPlain DropMode = iota

	// DropFlagged additionally clears the storage's present flag before the
	// destructor runs, so a pinned cell's own cleanup becomes a no-op.
	DropFlagged
)

// String returns a human-readable representation of the drop mode.
func (m DropMode) String() string {
	switch m {
	case DropPlain:
		return "plain"
	case DropFlagged:
		return "flagged"
	default:
		return "?"
	}
}

// Anchor is the ownership bookkeeping block shared between a cell and the
// handles minted over it. Storage implementations embed one Anchor per cell;
// handles hold a pointer to it plus a generation stamp.
//
// The generation counter is the runtime stand-in for static move checking:
// every ownership transition bumps it, so a handle whose stamp no longer
// matches is detectably stale.
type Anchor struct {
	gen    uint64
	filled bool
	flag   *bool // pinned-cell present flag, nil in plain mode
}

// Generation returns the anchor's current generation.
func (a *Anchor) Generation() uint64 { return a.gen }

// Filled reports whether the anchor currently tracks a live value.
func (a *Anchor) Filled() bool { return a.filled }

// Invalidate vacates the anchor and stales every outstanding handle over it.
// Storage calls this when it reclaims the cell (for example pin.Cell.Drop),
// so a leaked handle that resurfaces later fails fast instead of touching
// reclaimed memory.
func (a *Anchor) Invalidate() {
	a.gen++
	a.filled = false
	a.flag = nil
}

// consume vacates the anchor as part of a handle-side ownership transition.
func (a *Anchor) consume() {
	a.gen++
	a.filled = false
	a.flag = nil
}

// transfer stales the current handle stamp while keeping the value live,
// returning the stamp for the successor handle.
func (a *Anchor) transfer() uint64 {
	a.gen++
	return a.gen
}
