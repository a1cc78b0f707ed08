package main

import (
	"fmt"
	"io"

	"github.com/wippyai/ownref/arena"
	"github.com/wippyai/ownref/fnown"
	"github.com/wippyai/ownref/own"
	"github.com/wippyai/ownref/pin"
)

// note is a demo type with a dynamically dispatched view.
type note string

func (n note) String() string { return string(n) }

// runDemo walks through the library's core flows with a value type that
// announces its own destruction.
func runDemo(w io.Writer) {
	record := func(label string) {
		fmt.Fprintf(w, "    destroyed: %q\n", label)
	}

	fmt.Fprintln(w, "1. slot fill / drop / reuse")
	var slot own.Slot[guard]
	h := slot.Fill(guard{label: "42", onDrop: record})
	h.Drop()
	h = slot.Fill(guard{label: "7", onDrop: record})
	h.Drop()

	fmt.Fprintln(w, "2. extract disarms the destructor")
	h = slot.Fill(guard{label: "extracted", onDrop: record})
	g := h.Extract()
	fmt.Fprintf(w, "    caller now owns %q; destructor did not run\n", g.label)

	fmt.Fprintln(w, "3. widen to an interface, downcast back")
	var noteSlot own.Slot[note]
	wide := own.Widen[fmt.Stringer](noteSlot.Fill(note("same storage")))
	fmt.Fprintf(w, "    through the interface: %s\n", wide.Borrow().String())
	back, ok := own.Downcast[note](wide)
	fmt.Fprintf(w, "    downcast ok=%v value=%s\n", ok, back.Extract())

	fmt.Fprintln(w, "4. call-by-value dispatch")
	hf := fnown.Hold(fnown.F2(func(a, b int) int { return a + b }))
	fmt.Fprintf(w, "    sum = %d\n", fnown.Call2(hf, 40, 2))

	fmt.Fprintln(w, "5. pinned cell survives a leaked handle")
	cell := pin.NewCell[guard]()
	_ = cell.Fill(guard{label: "leaked", onDrop: record}) // handle forgotten
	cell.Drop()

	fmt.Fprintln(w, "6. arena allocates, reuses, and sweeps cells")
	a := arena.New[guard]()
	ah, ref, _ := a.Hold(guard{label: "swept-by-close", onDrop: record})
	_ = ah // leaked on purpose
	fmt.Fprintf(w, "    arena %s ref %d live=%d\n", a.ID(), ref, a.Live())
	a.Close()
}
