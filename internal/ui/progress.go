// Package ui renders live batch progress in the terminal.
package ui

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"bigcalc/internal/driver"
)

// fileRow is the state of one input file.
type fileRow struct {
	path   string
	status driver.Status
	lines  int
	failed int
}

// weight counts finished files fully and running ones as half.
func (r fileRow) weight() float64 {
	switch {
	case r.status.Final():
		return 1
	case r.status == driver.StatusWorking:
		return 0.5
	}
	return 0
}

type progressModel struct {
	title  string
	events <-chan driver.Event
	spin   spinner.Model
	bar    progress.Model
	rows   []fileRow
	byPath map[string]*fileRow
	width  int
	done   bool
}

type (
	eventMsg driver.Event
	doneMsg  struct{}
)

// NewProgressModel shows one row per file and an overall bar, fed by events.
// The model quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	m := &progressModel{
		title:  title,
		events: events,
		spin:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(accent)),
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(defaultWidth-4)),
		rows:   make([]fileRow, len(files)),
		byPath: make(map[string]*fileRow, len(files)),
		width:  defaultWidth,
	}
	for i, f := range files {
		m.rows[i] = fileRow{path: f, status: driver.StatusQueued}
		m.byPath[f] = &m.rows[i]
	}
	return m
}

// Finished reports whether m reached the end of its events instead of being
// interrupted with ctrl+c.
func Finished(m tea.Model) bool {
	pm, ok := m.(*progressModel)
	return ok && pm.done
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.listenForEvent())
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case eventMsg:
		cmd = tea.Batch(m.apply(driver.Event(msg)), m.listenForEvent())
	case doneMsg:
		m.done = true
		cmd = tea.Quit
	case spinner.TickMsg:
		if !m.done {
			m.spin, cmd = m.spin.Update(msg)
		}
	case progress.FrameMsg:
		var bar tea.Model
		bar, cmd = m.bar.Update(msg)
		m.bar = bar.(progress.Model)
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			cmd = tea.Quit
		}
	}
	return m, cmd
}

func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	row, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	row.status = ev.Status
	if ev.Lines > 0 {
		row.lines, row.failed = ev.Lines, ev.Failed
	}
	return m.bar.SetPercent(m.fraction())
}

func (m *progressModel) fraction() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	var sum float64
	for _, r := range m.rows {
		sum += r.weight()
	}
	return sum / float64(len(m.rows))
}

