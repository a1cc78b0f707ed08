package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/ownref/arena"
	"github.com/wippyai/ownref/own"
	"github.com/wippyai/ownref/pin"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	liveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	leakedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	vacantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	logStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateBrowse modelState = iota
	stateInput
)

type interactiveModel struct {
	a        *arena.Arena[guard]
	refs     []arena.Ref
	handles  map[arena.Ref]own.Handle[guard]
	log      []string
	input    textinput.Model
	selected int
	state    modelState
}

func newInteractiveModel() *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "value"
	ti.CharLimit = 64

	m := &interactiveModel{
		a:       arena.New[guard](),
		handles: make(map[arena.Ref]own.Handle[guard]),
		input:   ti,
	}
	m.a.Subscribe(arena.ObserverFunc(func(e arena.Event) {
		if e.Ref != 0 {
			m.logf("event: %s ref=%d", e.Type, e.Ref)
		} else {
			m.logf("event: %s", e.Type)
		}
	}))
	return m
}

func (m *interactiveModel) logf(format string, args ...any) {
	m.log = append(m.log, fmt.Sprintf(format, args...))
	if len(m.log) > 8 {
		m.log = m.log[len(m.log)-8:]
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.state == stateInput {
		switch key.String() {
		case "enter":
			m.fill(m.input.Value())
			m.input.Reset()
			m.input.Blur()
			m.state = stateBrowse
			return m, nil
		case "esc":
			m.input.Reset()
			m.input.Blur()
			m.state = stateBrowse
			return m, nil
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}

	switch key.String() {
	case "q", "ctrl+c":
		m.a.Close()
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.refs)-1 {
			m.selected++
		}
	case "f":
		m.state = stateInput
		m.input.Focus()
		return m, textinput.Blink
	case "d":
		m.drop()
	case "l":
		m.leak()
	case "r":
		m.release()
	}
	return m, nil
}

// fill allocates a fresh cell holding value.
func (m *interactiveModel) fill(value string) {
	h, ref, err := m.a.Hold(guard{label: value, onDrop: func(label string) {
		m.logf("destroyed: %q", label)
	}})
	if err != nil {
		m.logf("fill failed: %v", err)
		return
	}
	m.refs = append(m.refs, ref)
	m.handles[ref] = h
	m.selected = len(m.refs) - 1
}

func (m *interactiveModel) drop() {
	ref, ok := m.current()
	if !ok {
		return
	}
	h, ok := m.handles[ref]
	if !ok || !h.Live() {
		m.logf("ref %d: no live handle to drop", ref)
		return
	}
	h.Drop()
	delete(m.handles, ref)
}

func (m *interactiveModel) leak() {
	ref, ok := m.current()
	if !ok {
		return
	}
	if _, held := m.handles[ref]; !held {
		m.logf("ref %d: no handle to leak", ref)
		return
	}
	delete(m.handles, ref)
	m.logf("ref %d: handle leaked; cell flag still set", ref)
}

func (m *interactiveModel) release() {
	ref, ok := m.current()
	if !ok {
		return
	}
	if err := m.a.Release(ref); err != nil {
		m.logf("release failed: %v", err)
		return
	}
	delete(m.handles, ref)
	m.refs = append(m.refs[:m.selected], m.refs[m.selected+1:]...)
	if m.selected >= len(m.refs) && m.selected > 0 {
		m.selected--
	}
}

func (m *interactiveModel) current() (arena.Ref, bool) {
	if len(m.refs) == 0 {
		return 0, false
	}
	return m.refs[m.selected], true
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("owncell · arena "+m.a.ID()) + "\n\n")

	if len(m.refs) == 0 {
		b.WriteString(vacantStyle.Render("  no cells; press f to fill one") + "\n")
	}
	for i, ref := range m.refs {
		h, held := m.handles[ref]
		var status string
		switch {
		case held && h.Live():
			status = liveStyle.Render(fmt.Sprintf("live gen=%d %s", h.Generation(), h.Mode()))
		case !held && m.cellFilled(ref):
			status = leakedStyle.Render("leaked (flag set)")
		default:
			status = vacantStyle.Render("vacant")
		}
		line := fmt.Sprintf("  cell %-3d %s", ref, status)
		if i == m.selected && m.state == stateBrowse {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	if m.state == stateInput {
		b.WriteString("\n  value: " + m.input.View() + "\n")
	}

	if len(m.log) > 0 {
		b.WriteString("\n")
		for _, line := range m.log {
			b.WriteString(logStyle.Render("  "+line) + "\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render("  f fill · d drop · l leak · r release · ↑/↓ select · q quit") + "\n")
	return b.String()
}

func (m *interactiveModel) cellFilled(ref arena.Ref) bool {
	filled := false
	m.a.Each(func(r arena.Ref, c *pin.Cell[guard]) bool {
		if r == ref {
			filled = c.Filled()
			return false
		}
		return true
	})
	return filled
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel())
	_, err := p.Run()
	return err
}
