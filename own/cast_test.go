package own

import (
	"fmt"
	"testing"

	"github.com/wippyai/ownref/errors"
)

// loudWord has both a dynamically dispatched view and an observable
// destructor.
type loudWord struct {
	s   string
	log *[]string
}

func (w *loudWord) String() string { return w.s }
func (w *loudWord) Drop()          { *w.log = append(*w.log, w.s) }

func TestWiden_PreservesStorageAndBehavior(t *testing.T) {
	var log []string
	var s Slot[loudWord]

	h := s.Fill(loudWord{s: "hello", log: &log})
	direct := h.Ptr().String()
	addr := h.Ptr()

	wide := Widen[fmt.Stringer](h)
	if got := wide.Borrow().String(); got != direct {
		t.Fatalf("interface dispatch gave %q, direct call gave %q", got, direct)
	}

	// Same storage: downcasting recovers the original address.
	back, ok := Downcast[loudWord](wide)
	if !ok {
		t.Fatal("downcast to the stored type failed")
	}
	if back.Ptr() != addr {
		t.Fatal("widen/downcast moved the value to different storage")
	}

	back.Drop()
	if len(log) != 1 || log[0] != "hello" {
		t.Fatalf("expected one destruction, got %v", log)
	}
}

func TestWiden_MutationVisibleThroughInterface(t *testing.T) {
	var log []string
	var s Slot[loudWord]

	h := s.Fill(loudWord{s: "before", log: &log})
	h.Ptr().s = "after"

	wide := Widen[fmt.Stringer](h)
	if got := wide.Borrow().String(); got != "after" {
		t.Fatalf("expected dispatch over the stored value, got %q", got)
	}
	wide.Drop()
}

func TestWiden_ConsumesOriginal(t *testing.T) {
	var s Slot[loudWord]
	var log []string

	h := s.Fill(loudWord{s: "w", log: &log})
	wide := Widen[fmt.Stringer](h)

	mustPanicKind(t, errors.KindUseAfterMove, func() { h.Borrow() })
	wide.Drop()
	if len(log) != 1 {
		t.Fatalf("expected one destruction, got %v", log)
	}
}

func TestWiden_MismatchPanicsWithoutConsuming(t *testing.T) {
	var s Slot[int]
	h := s.Fill(42)

	mustPanicKind(t, errors.KindTypeMismatch, func() { Widen[fmt.Stringer](h) })

	// Ownership was not lost to the failed widen.
	if !h.Live() {
		t.Fatal("failed widen consumed the handle")
	}
	if got := h.Extract(); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestDowncast_RoundTrip(t *testing.T) {
	var s Slot[loudWord]
	var log []string

	h := s.Fill(loudWord{s: "round", log: &log})
	erased := Widen[any](h)
	back, ok := Downcast[loudWord](erased)
	if !ok {
		t.Fatal("downcast to the stored type failed")
	}
	if got := back.Ptr().s; got != "round" {
		t.Fatalf("expected value-equal round trip, got %q", got)
	}
	back.Drop()
	if len(log) != 1 {
		t.Fatalf("expected one destruction, got %v", log)
	}
}

func TestDowncast_MismatchLeavesOriginalLive(t *testing.T) {
	var s Slot[loudWord]
	var log []string

	h := s.Fill(loudWord{s: "keep", log: &log})
	erased := Widen[any](h)

	if _, ok := Downcast[int](erased); ok {
		t.Fatal("downcast to an unrelated type succeeded")
	}

	// The original handle is unchanged, still usable, and must still
	// destroy exactly once.
	if !erased.Live() {
		t.Fatal("failed downcast consumed the handle")
	}
	erased.Drop()
	if len(log) != 1 || log[0] != "keep" {
		t.Fatalf("expected one destruction, got %v", log)
	}
}

func TestWiden_ExtractRefused(t *testing.T) {
	var s Slot[dropGuard]
	var log []string

	erased := Widen[any](s.Fill(dropGuard{label: "first", log: &log}))
	mustPanicKind(t, errors.KindTypeMismatch, func() { erased.Extract() })

	// The refused extract consumed nothing: the handle still owns the
	// value, and a later refill cannot alias it.
	if !erased.Live() {
		t.Fatal("refused extract consumed the handle")
	}
	erased.Drop()

	h := s.Fill(dropGuard{label: "second", log: &log})
	h.Drop()
	if len(log) != 2 || log[0] != "first" || log[1] != "second" {
		t.Fatalf("expected [first second], got %v", log)
	}
}

func TestDowncast_ThroughNarrowerInterface(t *testing.T) {
	var s Slot[loudWord]
	var log []string

	h := s.Fill(loudWord{s: "str", log: &log})
	wide := Widen[fmt.Stringer](h)

	if _, ok := Downcast[int](wide); ok {
		t.Fatal("downcast to an unrelated type succeeded")
	}
	back, ok := Downcast[loudWord](wide)
	if !ok {
		t.Fatal("downcast to the stored type failed")
	}
	back.Drop()
}
