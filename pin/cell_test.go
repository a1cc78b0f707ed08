package pin

import (
	"testing"

	"github.com/wippyai/ownref/errors"
	"github.com/wippyai/ownref/own"
)

type dropGuard struct {
	label string
	log   *[]string
}

func (g dropGuard) Drop() { *g.log = append(*g.log, g.label) }

func mustPanicKind(t *testing.T, kind errors.Kind, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with kind %s", kind)
		}
		e, ok := r.(*errors.Error)
		if !ok {
			t.Fatalf("expected *errors.Error panic, got %v", r)
		}
		if e.Kind != kind {
			t.Fatalf("expected kind %s, got %s (%v)", kind, e.Kind, e)
		}
	}()
	fn()
}

func TestCell_LeakedHandleSweptByCellDrop(t *testing.T) {
	var log []string
	c := NewCell[dropGuard]()

	_ = c.Fill(dropGuard{label: "A", log: &log}) // handle deliberately leaked
	if len(log) != 0 {
		t.Fatal("destructor ran before the cell was dropped")
	}

	c.Drop()
	if len(log) != 1 || log[0] != "A" {
		t.Fatalf("expected the cell to destroy A exactly once, got %v", log)
	}

	// Dropping the cell again must not re-destroy.
	c.Drop()
	if len(log) != 1 {
		t.Fatalf("second cell drop re-ran destructor: %v", log)
	}
}

func TestCell_NormalDropMakesCellInert(t *testing.T) {
	var log []string
	c := NewCell[dropGuard]()

	h := c.Fill(dropGuard{label: "B", log: &log})
	if h.Mode() != own.DropFlagged {
		t.Fatalf("expected flagged handle, got %s", h.Mode())
	}
	h.Drop()
	if len(log) != 1 {
		t.Fatalf("expected one destruction, got %v", log)
	}
	if c.Filled() {
		t.Fatal("present flag not cleared by handle drop")
	}

	c.Drop()
	if len(log) != 1 {
		t.Fatalf("cell drop after normal handle drop re-ran destructor: %v", log)
	}
}

func TestCell_RefillWhileFlagSetPanics(t *testing.T) {
	var log []string
	c := NewCell[dropGuard]()

	_ = c.Fill(dropGuard{label: "first", log: &log})
	mustPanicKind(t, errors.KindRefillOccupied, func() {
		c.Fill(dropGuard{label: "second", log: &log})
	})
	c.Drop()
}

func TestCell_RefillAfterNormalDrop(t *testing.T) {
	var log []string
	c := NewCell[dropGuard]()

	h := c.Fill(dropGuard{label: "1", log: &log})
	h.Drop()
	h = c.Fill(dropGuard{label: "2", log: &log})
	h.Drop()

	if len(log) != 2 || log[0] != "1" || log[1] != "2" {
		t.Fatalf("expected [1 2], got %v", log)
	}
}

func TestCell_ExtractRefused(t *testing.T) {
	c := NewCell[int]()
	h := c.Fill(42)

	mustPanicKind(t, errors.KindPinnedMove, func() { h.Extract() })

	// The refused move did not consume ownership.
	if got := h.Borrow(); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	h.Drop()
	c.Drop()
}

func TestCell_LeakedHandleStaleAfterCellDrop(t *testing.T) {
	var log []string
	c := NewCell[dropGuard]()

	h := c.Fill(dropGuard{label: "C", log: &log})
	c.Drop() // sweeps the value while the handle is still around

	if len(log) != 1 {
		t.Fatalf("expected the sweep to destroy once, got %v", log)
	}
	mustPanicKind(t, errors.KindUseAfterMove, func() { h.Drop() })
	if len(log) != 1 {
		t.Fatalf("stale handle re-ran destructor: %v", log)
	}
}

func TestCell_SetKeepsFlagInvariant(t *testing.T) {
	var log []string
	c := NewCell[dropGuard]()

	h := c.Fill(dropGuard{label: "old", log: &log})
	h.Set(dropGuard{label: "new", log: &log})
	if len(log) != 1 || log[0] != "old" {
		t.Fatalf("expected Set to destroy the old value, got %v", log)
	}
	if !c.Filled() {
		t.Fatal("Set cleared the present flag")
	}

	// Leak the handle; the cell still owns cleanup of the replacement.
	c.Drop()
	if len(log) != 2 || log[1] != "new" {
		t.Fatalf("expected [old new], got %v", log)
	}
}

func TestCell_Peek(t *testing.T) {
	c := NewCell[int]()
	if _, ok := c.Peek(); ok {
		t.Fatal("empty cell reported a value")
	}
	h := c.Fill(9)
	if v, ok := c.Peek(); !ok || v != 9 {
		t.Fatalf("expected 9, got %v %v", v, ok)
	}
	h.Drop()
	if _, ok := c.Peek(); ok {
		t.Fatal("vacant cell reported a value")
	}
}

func TestWith_LeakSafety(t *testing.T) {
	var log []string

	got := With(dropGuard{label: "W", log: &log}, func(h own.Handle[dropGuard]) int {
		// Leak the handle on purpose.
		return 7
	})
	if got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	if len(log) != 1 || log[0] != "W" {
		t.Fatalf("expected exactly one destruction at scope exit, got %v", log)
	}
}

func TestWith_NormalDropNoDoubleDestroy(t *testing.T) {
	var log []string

	With(dropGuard{label: "N", log: &log}, func(h own.Handle[dropGuard]) struct{} {
		h.Drop()
		return struct{}{}
	})
	if len(log) != 1 {
		t.Fatalf("expected one destruction, got %v", log)
	}
}
