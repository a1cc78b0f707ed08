package arena

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wippyai/ownref/errors"
	"github.com/wippyai/ownref/own"
	"github.com/wippyai/ownref/pin"
)

// Arena allocates pinned storage cells and reclaims them exactly once.
type Arena[T any] struct {
	id        string
	cells     []*pin.Cell[T]
	inUse     []bool
	free      []Ref
	mu        sync.Mutex
	observers []Observer
	obsMu     sync.RWMutex
	closed    bool
}

// New creates an empty arena.
func New[T any]() *Arena[T] {
	a := &Arena[T]{
		id:    uuid.NewString(),
		cells: make([]*pin.Cell[T], 0, 16),
		free:  make([]Ref, 0, 8),
	}
	Logger().Debug("arena created", zap.String("arena", a.id))
	return a
}

// ID returns the arena's unique identifier.
func (a *Arena[T]) ID() string { return a.id }

// Cell allocates a vacant pinned cell, reusing a previously released one
// when possible.
func (a *Arena[T]) Cell() (*pin.Cell[T], Ref, error) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil, 0, errors.Closed("arena " + a.id)
	}

	var ref Ref
	if len(a.free) > 0 {
		ref = a.free[len(a.free)-1]
		a.free = a.free[:len(a.free)-1]
		a.inUse[ref-1] = true
	} else {
		a.cells = append(a.cells, pin.NewCell[T]())
		a.inUse = append(a.inUse, true)
		ref = Ref(len(a.cells))
	}
	cell := a.cells[ref-1]
	a.mu.Unlock()

	Logger().Debug("cell allocated",
		zap.String("arena", a.id),
		zap.Uint32("ref", uint32(ref)),
	)
	a.notify(Event{Type: EventAllocated, Arena: a.id, Ref: ref})

	return cell, ref, nil
}

// Hold allocates a cell and fills it in one step, returning the flagged
// handle owning value.
func (a *Arena[T]) Hold(value T) (own.Handle[T], Ref, error) {
	cell, ref, err := a.Cell()
	if err != nil {
		return own.Handle[T]{}, 0, err
	}
	return cell.Fill(value), ref, nil
}

// Release reclaims a cell and returns it to the free list. A value still
// present in the cell (its handle was leaked, or is still outstanding) is
// destroyed first; the drop flag guarantees that happens exactly once.
//
// The ref is published to the free list only after the sweep completes, so
// a concurrent Cell cannot hand out storage that is still being reclaimed.
func (a *Arena[T]) Release(ref Ref) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return errors.Closed("arena " + a.id)
	}
	cell, err := a.lookup(ref)
	if err != nil {
		a.mu.Unlock()
		return err
	}
	a.inUse[ref-1] = false
	a.mu.Unlock()

	// The cell is unreachable now: not in use, not yet on the free list.
	// Destructors run outside the lock so they may call back into the arena.
	swept, ok := a.sweep(cell, ref)

	a.mu.Lock()
	if !a.closed {
		a.free = append(a.free, ref)
	}
	a.mu.Unlock()

	if ok {
		a.notify(Event{Type: EventSwept, Arena: a.id, Ref: ref, Value: swept})
	}
	a.notify(Event{Type: EventReleased, Arena: a.id, Ref: ref})
	return nil
}

// Len returns the number of allocated cells.
func (a *Arena[T]) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	count := 0
	for _, used := range a.inUse {
		if used {
			count++
		}
	}
	return count
}

// Live returns the number of cells currently holding a value.
func (a *Arena[T]) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	count := 0
	for i, used := range a.inUse {
		if used && a.cells[i].Filled() {
			count++
		}
	}
	return count
}

// Each iterates over all allocated cells.
func (a *Arena[T]) Each(fn func(Ref, *pin.Cell[T]) bool) {
	a.mu.Lock()
	type pair struct {
		cell *pin.Cell[T]
		ref  Ref
	}
	pairs := make([]pair, 0, len(a.cells))
	for i, used := range a.inUse {
		if used {
			pairs = append(pairs, pair{a.cells[i], Ref(i + 1)})
		}
	}
	a.mu.Unlock()

	for _, p := range pairs {
		if !fn(p.ref, p.cell) {
			break
		}
	}
}

// Subscribe adds an observer for lifecycle events.
func (a *Arena[T]) Subscribe(o Observer) {
	a.obsMu.Lock()
	defer a.obsMu.Unlock()
	a.observers = append(a.observers, o)
}

// Unsubscribe removes an observer. The observer must have a comparable
// dynamic type; func-backed observers such as ObserverFunc cannot be
// removed.
func (a *Arena[T]) Unsubscribe(o Observer) {
	a.obsMu.Lock()
	defer a.obsMu.Unlock()
	for i, obs := range a.observers {
		if obs == o {
			a.observers = append(a.observers[:i], a.observers[i+1:]...)
			return
		}
	}
}

// Close reclaims every allocated cell and stops accepting operations.
// Values whose handles were leaked are destroyed here, exactly once.
func (a *Arena[T]) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	type pair struct {
		cell *pin.Cell[T]
		ref  Ref
	}
	var pairs []pair
	for i, used := range a.inUse {
		if used {
			pairs = append(pairs, pair{a.cells[i], Ref(i + 1)})
			a.inUse[i] = false
		}
	}
	a.cells = nil
	a.free = nil
	a.mu.Unlock()

	for _, p := range pairs {
		if swept, ok := a.sweep(p.cell, p.ref); ok {
			a.notify(Event{Type: EventSwept, Arena: a.id, Ref: p.ref, Value: swept})
		}
	}

	Logger().Debug("arena closed",
		zap.String("arena", a.id),
		zap.Int("cells", len(pairs)),
	)
	a.notify(Event{Type: EventClosed, Arena: a.id})
	return nil
}

// lookup resolves ref to its cell; the caller holds a.mu.
func (a *Arena[T]) lookup(ref Ref) (*pin.Cell[T], error) {
	if ref == 0 || int(ref) > len(a.cells) || !a.inUse[ref-1] {
		return nil, errors.ForeignHandle("ref not allocated by arena " + a.id)
	}
	return a.cells[ref-1], nil
}

// sweep drops the cell, reporting the value it had to destroy, if any.
func (a *Arena[T]) sweep(cell *pin.Cell[T], ref Ref) (any, bool) {
	value, present := cell.Peek()
	cell.Drop()
	if present {
		Logger().Debug("cell swept a leaked value",
			zap.String("arena", a.id),
			zap.Uint32("ref", uint32(ref)),
		)
		return value, true
	}
	return nil, false
}

func (a *Arena[T]) notify(e Event) {
	a.obsMu.RLock()
	defer a.obsMu.RUnlock()
	for _, o := range a.observers {
		o.OnCellEvent(e)
	}
}
