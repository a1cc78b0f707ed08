package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/ownref/arena"
	"github.com/wippyai/ownref/own"
	"github.com/wippyai/ownref/pin"
)

// Scenario is a scripted sequence of lifecycle operations executed against
// one arena. Cells are named; the first fill of a name allocates its cell.
//
//	name: leak-demo
//	steps:
//	  - {op: fill, cell: a, value: "42"}
//	  - {op: drop, cell: a}
//	  - {op: fill, cell: a, value: "7"}
//	  - {op: leak, cell: a}
//	  - {op: close}
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one scripted operation.
type Step struct {
	Op    string `yaml:"op"`    // fill, drop, extract-error, leak, release, close
	Cell  string `yaml:"cell"`  // cell name, required except for close
	Value string `yaml:"value"` // fill only
}

// LoadScenario reads and validates a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	for i, step := range s.Steps {
		switch step.Op {
		case "fill", "drop", "leak", "release":
			if step.Cell == "" {
				return nil, fmt.Errorf("step %d (%s): missing cell name", i+1, step.Op)
			}
		case "close":
		default:
			return nil, fmt.Errorf("step %d: unknown op %q", i+1, step.Op)
		}
	}
	return &s, nil
}

// guard is the value type used by scenarios: it reports its own destruction
// so exactly-once semantics are visible in the trace.
type guard struct {
	label  string
	onDrop func(string)
}

func (g guard) Drop() { g.onDrop(g.label) }

// Run executes the scenario, writing the lifecycle trace to w.
func (s *Scenario) Run(w io.Writer) error {
	a := arena.New[guard]()
	defer a.Close()

	a.Subscribe(arena.ObserverFunc(func(e arena.Event) {
		if e.Ref != 0 {
			fmt.Fprintf(w, "  event: %s ref=%d\n", e.Type, e.Ref)
		} else {
			fmt.Fprintf(w, "  event: %s\n", e.Type)
		}
	}))

	refs := make(map[string]arena.Ref)
	handles := make(map[string]own.Handle[guard])
	record := func(label string) {
		fmt.Fprintf(w, "  destroyed: %q\n", label)
	}

	if s.Name != "" {
		fmt.Fprintf(w, "scenario %s (arena %s)\n", s.Name, a.ID())
	}

	for i, step := range s.Steps {
		fmt.Fprintf(w, "step %d: %s %s\n", i+1, step.Op, step.Cell)
		switch step.Op {
		case "fill":
			if h, ok := handles[step.Cell]; ok && h.Live() {
				return fmt.Errorf("step %d: cell %q already holds a live value", i+1, step.Cell)
			}
			ref, ok := refs[step.Cell]
			var h own.Handle[guard]
			if !ok {
				var err error
				h, ref, err = a.Hold(guard{label: step.Value, onDrop: record})
				if err != nil {
					return fmt.Errorf("step %d: %w", i+1, err)
				}
				refs[step.Cell] = ref
			} else {
				cell, found := cellByRef(a, ref)
				if !found {
					return fmt.Errorf("step %d: cell %q was released", i+1, step.Cell)
				}
				h = cell.Fill(guard{label: step.Value, onDrop: record})
			}
			handles[step.Cell] = h

		case "drop":
			h, ok := handles[step.Cell]
			if !ok || !h.Live() {
				return fmt.Errorf("step %d: cell %q has no live handle", i+1, step.Cell)
			}
			h.Drop()
			delete(handles, step.Cell)

		case "leak":
			// Forget the handle without dropping it; the cell's flag keeps
			// the value reclaimable at release/close time.
			if _, ok := handles[step.Cell]; !ok {
				return fmt.Errorf("step %d: cell %q has no handle to leak", i+1, step.Cell)
			}
			delete(handles, step.Cell)

		case "release":
			ref, ok := refs[step.Cell]
			if !ok {
				return fmt.Errorf("step %d: unknown cell %q", i+1, step.Cell)
			}
			if err := a.Release(ref); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
			delete(refs, step.Cell)
			delete(handles, step.Cell)

		case "close":
			if err := a.Close(); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
		}
	}
	return nil
}

func cellByRef[T any](a *arena.Arena[T], ref arena.Ref) (cell *pin.Cell[T], found bool) {
	a.Each(func(r arena.Ref, c *pin.Cell[T]) bool {
		if r == ref {
			cell, found = c, true
			return false
		}
		return true
	})
	return cell, found
}
