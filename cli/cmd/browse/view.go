package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	keyStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle    = keyStyle.Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
	valueStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	hintStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	end := min(m.offset+m.rows(), len(m.matches))

	for i := m.offset; i < end; i++ {
		match := m.matches[i]
		selected := i == m.cursor

		if selected {
			b.WriteString(selectedStyle.Render("> "))
		} else {
			b.WriteString("  ")
		}

		b.WriteString(renderKey(match, selected))
		b.WriteString(hintStyle.Render(" : "))
		b.WriteString(valueStyle.Render(
			ellipsize(m.entries[match.Str].Quote(), m.width-len(match.Str)-5),
		))
		b.WriteString("\n")
	}

	b.WriteString(hintStyle.Render(
		fmt.Sprintf("%d/%d  enter select · esc quit", len(m.matches), len(m.keys)),
	))
	b.WriteString("\n")

	return b.String()
}

// renderKey renders a key with the characters matched by the query
// highlighted.
func renderKey(match fuzzy.Match, selected bool) string {
	base, highlight := keyStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}

// ellipsize shortens s to at most width runes. A width below 1 is no limit.
func ellipsize(s string, width int) string {
	r := []rune(s)
	if width < 1 || len(r) <= width {
		return s
	}

	if width == 1 {
		return "…"
	}

	return string(r[:width-1]) + "…"
}
