package manifest

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Wizard styles.
var (
	wizardTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	wizardPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	wizardErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196"))

	wizardHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// WizardModel is the bubbletea model for the manifest creation wizard. It
// walks the schema fields in order, one text input per field, validating
// version and URL fields before advancing.
type WizardModel struct {
	manifest     Manifest
	fields       []Field
	inputs       []textinput.Model
	currentField int
	inputError   string
	done         bool
	cancelled    bool
}

// NewWizard creates a wizard seeded with the given manifest. Fields that
// already carry a value are shown pre-filled so re-running the wizard edits
// rather than restarts.
func NewWizard(initial Manifest) WizardModel {
	inputs := make([]textinput.Model, len(Schema))
	for i, field := range Schema {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 256
		ti.Width = 60
		ti.SetValue(initial.FieldValue(field.Key))
		if field.Required {
			ti.Placeholder = "required"
		} else {
			ti.Placeholder = "optional, enter to skip"
		}
		inputs[i] = ti
	}

	if len(inputs) > 0 {
		inputs[0].Focus()
	}

	return WizardModel{
		manifest: initial,
		fields:   Schema,
		inputs:   inputs,
	}
}

// Init initializes the model.
func (m WizardModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key messages and advances through the fields.
func (m WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInput(msg)
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		m.cancelled = true

		return m, tea.Quit
	case "enter":
		field := m.fields[m.currentField]
		value := strings.TrimSpace(m.inputs[m.currentField].Value())

		if value == "" && field.Required {
			m.inputError = "this field is required"

			return m, nil
		}
		if value != "" {
			if reason := CheckFieldValue(field, value); reason != "" {
				m.inputError = reason

				return m, nil
			}
		}

		m.manifest.SetFieldValue(field.Key, value)
		m.inputError = ""

		if m.currentField >= len(m.fields)-1 {
			m.done = true

			return m, tea.Quit
		}

		m.inputs[m.currentField].Blur()
		m.currentField++
		m.inputs[m.currentField].Focus()

		return m, textinput.Blink
	case "shift+tab":
		if m.currentField > 0 {
			m.inputs[m.currentField].Blur()
			m.currentField--
			m.inputs[m.currentField].Focus()
			m.inputError = ""
		}

		return m, nil
	}

	return m.updateInput(msg)
}

// updateInput forwards a message to the focused text input.
func (m WizardModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.currentField], cmd = m.inputs[m.currentField].Update(msg)

	return m, cmd
}

// View renders the current wizard state.
func (m WizardModel) View() string {
	if m.done {
		return "Manifest data collected.\n"
	}

	if m.cancelled {
		return "Manifest creation cancelled.\n"
	}

	field := m.fields[m.currentField]

	var b strings.Builder
	b.WriteString(wizardTitleStyle.Render("Create Plugin Manifest"))
	b.WriteString(fmt.Sprintf("  (field %d of %d)\n\n", m.currentField+1, len(m.fields)))
	b.WriteString(wizardPromptStyle.Render(field.Prompt))
	b.WriteString("\n")
	b.WriteString(m.inputs[m.currentField].View())
	b.WriteString("\n")

	if m.inputError != "" {
		b.WriteString(wizardErrorStyle.Render("✗ " + m.inputError))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(wizardHelpStyle.Render("enter: confirm • shift+tab: back • esc: cancel"))
	b.WriteString("\n")

	return b.String()
}

// Done reports whether the wizard finished all fields.
func (m WizardModel) Done() bool {
	return m.done
}

// Cancelled reports whether the wizard was aborted.
func (m WizardModel) Cancelled() bool {
	return m.cancelled
}

// Manifest returns the collected manifest data.
func (m WizardModel) Manifest() Manifest {
	return m.manifest
}
