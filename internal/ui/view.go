package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const labelWidth = 12

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	labelStyle = map[string]lipgloss.Style{
		"done":  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"error": lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
	busyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	idleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	n, failed := m.settled()
	header := fmt.Sprintf("%s (%d/%d)", m.title, n, len(m.rows))
	if failed > 0 {
		header += fmt.Sprintf(", %d failed", failed)
	}
	if m.drained {
		header = "done: " + header
	} else {
		header = m.spin.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header) + "\n\n")
	pathWidth := max(m.width-labelWidth-14, 20)
	for _, r := range m.rows {
		fmt.Fprintf(&b, "  %s %s", styleFor(r).Render(fmt.Sprintf("%*s", labelWidth, r.label)), truncate(r.path, pathWidth))
		if r.final && r.took > 0 {
			b.WriteString(" " + dimStyle.Render(r.took.Round(time.Microsecond).String()))
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	if m.drained {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

func styleFor(r fileRow) lipgloss.Style {
	if s, ok := labelStyle[r.label]; ok {
		return s
	}
	if r.label == "queued" {
		return idleStyle
	}
	return busyStyle
}

// truncate cuts value to width terminal cells, ending in "..." when there
// is room for it.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	return runewidth.Truncate(value, width-len(tail), "") + tail
}
