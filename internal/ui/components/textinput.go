package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockprep/internal/ui/theme"
)

// TextInput is a styled single-line field. Numeric fields drop every
// keystroke or paste that is not a digit.
type TextInput struct {
	Model   textinput.Model
	Numeric bool
}

// NewTextInput creates a focused input. limit <= 0 means no length limit.
func NewTextInput(placeholder string, numeric bool, limit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if limit > 0 {
		ti.CharLimit = limit
	}
	ti.Focus()
	return TextInput{Model: ti, Numeric: numeric}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update forwards msg to the underlying input after numeric filtering.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.Numeric {
		switch m := msg.(type) {
		case tea.KeyPressMsg:
			if m.Text != "" && !isDigits(m.Text) {
				return t, nil
			}
		case tea.PasteMsg:
			digits := strings.Map(func(r rune) rune {
				if r >= '0' && r <= '9' {
					return r
				}
				return -1
			}, m.Content)
			if digits == "" {
				return t, nil
			}
			msg = tea.PasteMsg{Content: digits}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// View renders the input, dimmed while unfocused.
func (t TextInput) View() string {
	if !t.Model.Focused() {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render(t.Model.View())
	}
	return t.Model.View()
}

// Value returns the raw input.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input and moves the cursor to the end.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
	t.Model.CursorEnd()
}

// Focus and Blur toggle keyboard focus.
func (t *TextInput) Focus() { t.Model.Focus() }
func (t *TextInput) Blur()  { t.Model.Blur() }

// NumericValue parses the input as an integer.
func (t TextInput) NumericValue() (int, error) {
	return strconv.Atoi(strings.TrimSpace(t.Model.Value()))
}
