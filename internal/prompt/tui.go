package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"golang.org/x/term"
)

// IsTerminal reports whether stdin is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

type keyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

var keys = keyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "accept"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}

var (
	questionStyle = lipgloss.NewStyle().Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// inputModel is a single-field form. It stays open until a non-empty value is
// submitted or the operator cancels.
type inputModel struct {
	question string
	input    textinput.Model
	err      string
	value    string
	canceled bool
	done     bool
}

func newInputModel(key, description string) *inputModel {
	ti := textinput.New()
	ti.Placeholder = key
	ti.Prompt = "> "
	ti.CharLimit = 4096
	ti.SetWidth(60)
	return &inputModel{
		question: strings.TrimSuffix(Question(key, description), " "),
		input:    ti,
	}
}

func (m *inputModel) Init() tea.Cmd {
	return m.input.Focus()
}

func (m *inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch {
		case key.Matches(msg, keys.Cancel):
			m.canceled = true
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, keys.Submit):
			v := strings.TrimSpace(m.input.Value())
			if v == "" {
				m.err = "Value is required"
				return m, nil
			}
			m.value = v
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != "" {
		m.err = ""
	}
	return m, cmd
}

func (m *inputModel) View() tea.View {
	return tea.NewView(m.render())
}

func (m *inputModel) render() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	b.WriteString(questionStyle.Render(m.question))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(fmt.Sprintf("%s %s • %s %s",
		keys.Submit.Help().Key, keys.Submit.Help().Desc,
		keys.Cancel.Help().Key, keys.Cancel.Help().Desc)))
	b.WriteString("\n")
	return b.String()
}

// TUI prompts with a small inline terminal form.
type TUI struct {
	In  io.Reader
	Out io.Writer
}

// NewTUI returns a form prompter on the process terminal.
func NewTUI() *TUI {
	return &TUI{In: os.Stdin, Out: os.Stderr}
}

func (t *TUI) Prompt(ctx context.Context, key, description string) (string, error) {
	m := newInputModel(key, description)
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(t.In),
		tea.WithOutput(t.Out),
	)
	final, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if errors.Is(err, tea.ErrInterrupted) {
			return "", ErrCanceled
		}
		return "", fmt.Errorf("prompting for %s: %w", key, err)
	}
	res, ok := final.(*inputModel)
	if !ok || res.canceled {
		return "", ErrCanceled
	}
	return res.value, nil
}
