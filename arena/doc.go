// Package arena provides a storage-cell allocator with free-list reuse and
// lifecycle observation.
//
// An Arena hands out pinned cells (pin.Cell) so that whatever happens to
// the handles minted over them, Close can always reclaim every value
// exactly once. Vacated cells go on a free list and are reused by later
// allocations.
//
//	a := arena.New[*Conn]()
//	defer a.Close()
//
//	cell, ref, err := a.Cell()
//	if err != nil { ... }
//	h := cell.Fill(conn)
//	...
//	a.Release(ref) // sweeps a leaked value, returns the cell for reuse
//
// # Observers
//
// Register observers to track cell lifecycle events:
//
//	a.Subscribe(arena.ObserverFunc(func(e arena.Event) {
//	    switch e.Type {
//	    case arena.EventAllocated:
//	        log.Printf("cell %d allocated", e.Ref)
//	    case arena.EventSwept:
//	        log.Printf("cell %d swept a leaked value", e.Ref)
//	    }
//	}))
//
// # Logging
//
// The package logs through a zap logger, no-op by default; call SetLogger
// before first use to enable it. Each arena carries a unique ID that tags
// its log entries and events.
package arena
