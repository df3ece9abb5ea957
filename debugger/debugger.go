// Package debugger provides an interactive Bubble Tea TUI over a
// trace.Driver, stepping one recognized unit (reset, interrupt, or
// instruction) per keypress instead of draining the whole trace at once.
package debugger

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"decoder6809/trace"
)

// scrollback is how many emitted lines the trace pane keeps on screen.
const scrollback = 20

// scrollbackBuf is the trace pane's backing storage, held by pointer so
// every value copy Bubble Tea's Update makes of model still shares the
// same lines the driver's Sink (a lineWriter over this same pointer)
// appends to.
type scrollbackBuf struct {
	lines []string
}

type model struct {
	drv  *trace.Driver
	buf  *scrollbackBuf
	err  error
	done bool
}

// lineWriter adapts io.Writer onto a scrollbackBuf, splitting incoming
// writes on newlines the way the driver emits them (one fmt.Fprintln per
// instruction).
type lineWriter struct {
	buf *scrollbackBuf
}

func (w lineWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line == "" {
			continue
		}
		w.buf.lines = append(w.buf.lines, line)
		if len(w.buf.lines) > scrollback {
			w.buf.lines = w.buf.lines[len(w.buf.lines)-scrollback:]
		}
	}
	return len(p), nil
}

// Init is the first function called. It returns an optional initial
// command; this model needs none.
func (m model) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case " ", "j":
			if m.done {
				return m, nil
			}
			done, err := m.drv.StepOnce()
			if err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.done = done
		}
	}
	return m, nil
}

// status renders the live register/flag bank via go-spew, exactly as the
// teacher's View dumped its opcode table entry with spew.Sdump.
func (m model) status() string {
	return fmt.Sprintf("phase: %s\n\n%s", m.drv.Phase(), spew.Sdump(m.drv.State()))
}

// traceLines renders the scrolling window of decoded trace lines, in
// place of the teacher's raw-RAM page table.
func (m model) traceLines() string {
	if len(m.buf.lines) == 0 {
		return "(no output yet — press space to step)"
	}
	return strings.Join(m.buf.lines, "\n")
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m model) View() string {
	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().Width(60).Render(m.traceLines()),
		m.status(),
	)
	footer := "space/j: step one  q: quit"
	if m.err != nil {
		footer = fmt.Sprintf("error: %v  (q: quit)", m.err)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, "", footer)
}

// Run starts an interactive TUI stepping drv one recognized unit at a
// time, returning any error from the program once it exits.
func Run(drv *trace.Driver) error {
	buf := &scrollbackBuf{}
	drv.Sink = lineWriter{buf: buf}
	m := model{drv: drv, buf: buf}

	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
