package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/binderkit/binderrpc/binder"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	instanceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	addrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	sm        *binder.ServiceManager
	dir       *directory
	instances []string
	query     textinput.Model
	selected  int
	result    string
	queried   string
	failed    bool
	state     modelState
}

type modelState int

const (
	stateSelect modelState = iota
	stateQuery
	stateShowResult
)

func newInteractiveModel(sm *binder.ServiceManager, dir *directory) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "instance name"
	ti.Prompt = "resolve: "
	ti.Width = 40

	return &interactiveModel{
		sm:        sm,
		dir:       dir,
		instances: dir.instances(),
		query:     ti,
		state:     stateSelect,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateQuery {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelect && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelect && m.selected < len(m.instances)-1 {
				m.selected++
			}

		case "/":
			if m.state == stateSelect {
				m.state = stateQuery
				m.query.SetValue("")
				m.query.Focus()
				return m, textinput.Blink
			}

		case "enter":
			switch m.state {
			case stateSelect:
				if len(m.instances) > 0 {
					m.resolve(m.instances[m.selected])
				}

			case stateQuery:
				name := strings.TrimSpace(m.query.Value())
				if name != "" {
					m.query.Blur()
					m.resolve(name)
				}

			case stateShowResult:
				m.state = stateSelect
				m.result = ""
				m.failed = false
			}

		case "esc":
			switch m.state {
			case stateQuery:
				m.query.Blur()
				m.state = stateSelect
			case stateShowResult:
				m.state = stateSelect
				m.result = ""
				m.failed = false
			}
		}
	}

	if m.state == stateQuery {
		var cmd tea.Cmd
		m.query, cmd = m.query.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) resolve(instance string) {
	m.queried = instance
	info, ok := m.sm.GetConnection(instance)
	if !ok {
		m.failed = true
		m.result = ""
	} else {
		m.failed = false
		m.result = formatConnection(info)
	}
	m.state = stateShowResult
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Accessor Directory"))
	b.WriteString(fmt.Sprintf(" %d instances\n\n", len(m.instances)))

	switch m.state {
	case stateSelect:
		b.WriteString("Select an instance to resolve:\n\n")
		for i, instance := range m.instances {
			line := instanceStyle.Render(instance) + " " +
				addrStyle.Render(describe(m.dir.entries[instance]))
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + instance))
				b.WriteString(" " + addrStyle.Render(describe(m.dir.entries[instance])))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter resolve • / free-form • q quit"))

	case stateQuery:
		b.WriteString("Resolve an arbitrary instance:\n\n")
		b.WriteString(m.query.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter resolve • esc back"))

	case stateShowResult:
		b.WriteString(fmt.Sprintf("Resolution of %s:\n\n", instanceStyle.Render(m.queried)))
		if m.failed {
			b.WriteString(errorStyle.Render("no connection info"))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func runInteractive(sm *binder.ServiceManager, dir *directory) error {
	p := tea.NewProgram(newInteractiveModel(sm, dir), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
