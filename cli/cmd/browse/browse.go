// Package browse implements an interactive fuzzy finder over the keys of a
// parsed ECNF document.
package browse

import (
	"context"
	"log/slog"
	"slices"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/ecnf/ecnf"
	"github.com/ardnew/ecnf/log"
)

const (
	prompt        = "➜ "
	defaultWidth  = 80
	defaultHeight = 12
	// chrome is the number of lines the view uses besides the entry rows.
	chrome = 3
)

// Run shows the finder until the user selects an entry or quits. It returns
// the selected key, or false if nothing was selected.
func Run(
	ctx context.Context,
	entries ecnf.Map,
	query string,
	opts ...tea.ProgramOption,
) (string, bool, error) {
	log.TraceContext(ctx, "browse start",
		slog.Int("entries", len(entries)),
		slog.String("query", query),
	)

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)

	final, err := tea.NewProgram(newModel(entries, query), opts...).Run()
	if err != nil {
		return "", false, err
	}

	m, _ := final.(model)

	log.TraceContext(ctx, "browse done",
		slog.String("selected", m.selected),
		slog.Bool("chosen", m.chosen),
	)

	return m.selected, m.chosen, nil
}

// model is the Bubble Tea model of the finder.
type model struct {
	input    textinput.Model
	entries  ecnf.Map
	keys     []string
	matches  fuzzy.Matches
	selected string
	cursor   int
	offset   int
	width    int
	height   int
	chosen   bool
	quitting bool
}

func newModel(entries ecnf.Map, query string) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Placeholder = "filter keys"
	ti.CharLimit = 256
	ti.Width = defaultWidth - len(prompt)
	ti.SetValue(query)
	ti.Focus()

	m := model{
		input:   ti,
		entries: entries,
		keys:    slices.Collect(entries.Keys()),
		width:   defaultWidth,
		height:  defaultHeight,
	}

	m.refresh()

	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-len(prompt)-1, 1)
		m.scroll()

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true

		return m, tea.Quit

	case tea.KeyEnter:
		if len(m.matches) == 0 {
			return m, nil
		}

		m.selected = m.matches[m.cursor].Str
		m.chosen = true
		m.quitting = true

		return m, tea.Quit

	case tea.KeyUp, tea.KeyCtrlP, tea.KeyShiftTab:
		m.move(-1)

		return m, nil

	case tea.KeyDown, tea.KeyCtrlN, tea.KeyTab:
		m.move(1)

		return m, nil

	case tea.KeyPgUp:
		m.move(-m.rows())

		return m, nil

	case tea.KeyPgDown:
		m.move(m.rows())

		return m, nil
	}

	before := m.input.Value()

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != before {
		m.refresh()
	}

	return m, cmd
}

// refresh recomputes the matches for the current query and moves the cursor
// to the best match.
func (m *model) refresh() {
	query := m.input.Value()

	if query == "" {
		m.matches = make(fuzzy.Matches, len(m.keys))
		for i, key := range m.keys {
			m.matches[i] = fuzzy.Match{Str: key, Index: i}
		}
	} else {
		m.matches = fuzzy.Find(query, m.keys)
	}

	m.cursor = 0
	m.offset = 0
}

func (m *model) move(delta int) {
	if len(m.matches) == 0 {
		return
	}

	m.cursor = min(max(m.cursor+delta, 0), len(m.matches)-1)
	m.scroll()
}

// scroll keeps the cursor inside the visible window of rows.
func (m *model) scroll() {
	rows := m.rows()

	switch {
	case m.cursor < m.offset:
		m.offset = m.cursor
	case m.cursor >= m.offset+rows:
		m.offset = m.cursor - rows + 1
	}
}

// rows returns the number of entry rows that fit in the view.
func (m model) rows() int {
	return max(m.height-chrome, 1)
}
