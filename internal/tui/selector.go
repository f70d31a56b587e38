package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrAborted is returned when the user quits without choosing.
var ErrAborted = errors.New("selection aborted")

// Choice is one selectable line.
type Choice struct {
	Name        string
	Description string
}

type model struct {
	choices  []Choice
	cursor   int
	selected bool
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = true
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString("Choose a project type:\n\n")
	for i, choice := range m.choices {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		fmt.Fprintf(&b, "%s %-8s %s\n", cursor, choice.Name, choice.Description)
	}
	if m.selected {
		b.WriteString("\nGenerating project...\n")
	}
	return b.String()
}

// SelectArchetype shows choices and returns the chosen name.
func SelectArchetype(choices []Choice, opts ...tea.ProgramOption) (string, error) {
	if len(choices) == 0 {
		return "", errors.New("nothing to choose from")
	}
	p := tea.NewProgram(model{choices: choices}, opts...)
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	m := final.(model)
	if !m.selected {
		return "", ErrAborted
	}
	return m.choices[m.cursor].Name, nil
}

// WithIO runs the selector on the given streams instead of the terminal.
func WithIO(in io.Reader, out io.Writer) []tea.ProgramOption {
	return []tea.ProgramOption{tea.WithInput(in), tea.WithOutput(out)}
}
