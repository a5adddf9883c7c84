package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"bigcalc/internal/driver"
)

const (
	defaultWidth = 80
	statusWidth  = 10
	countsWidth  = 14
)

var (
	accent     = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	plain      = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

// statusLook maps a status to its label and colour; missing entries print
// the status itself in plain style.
var statusLook = map[driver.Status]struct {
	label string
	style lipgloss.Style
}{
	driver.StatusWorking: {"evaluating", accent},
	driver.StatusDone:    {"done", lipgloss.NewStyle().Foreground(lipgloss.Color("2"))},
	driver.StatusError:   {"failed", lipgloss.NewStyle().Foreground(lipgloss.Color("1"))},
}

func renderStatus(s driver.Status) string {
	look, ok := statusLook[s]
	if !ok {
		look.label, look.style = string(s), plain
	}
	return look.style.Render(fmt.Sprintf("%*s", statusWidth, look.label))
}

func (r fileRow) counts() string {
	switch {
	case r.lines == 0:
		return ""
	case r.failed == 0:
		return fmt.Sprintf("%d lines", r.lines)
	default:
		return fmt.Sprintf("%d lines, %d bad", r.lines, r.failed)
	}
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder
	head := m.spin.View() + " " + m.title
	if m.done {
		head = "done: " + m.title
	}
	b.WriteString(titleStyle.Render(head) + "\n\n")

	nameWidth := max(m.width-statusWidth-countsWidth-6, 20)
	for _, r := range m.rows {
		name := runewidth.FillRight(truncate(r.path, nameWidth), nameWidth)
		fmt.Fprintf(&b, "  %s %s %s\n", renderStatus(r.status), name, r.counts())
	}

	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

// truncate shortens value to width cells, ending in "..." when there is room.
func truncate(value string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(value) <= width:
		return value
	case width <= 3:
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
