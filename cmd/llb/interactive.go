package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/wasm-lowlevel/lowlevel"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	codecStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")).
			Width(10)

	bytesStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type encodeRow struct {
	codec string
	bytes string
	err   error
}

type interactiveModel struct {
	input textinput.Model
	err   error
	rows  []encodeRow
}

func newInteractiveModel() *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "300"
	ti.Prompt = "value: "
	ti.Width = 24
	ti.Focus()
	return &interactiveModel{input: ti}
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.refresh()
	return m, cmd
}

// refresh re-encodes the current input under every codec.
func (m *interactiveModel) refresh() {
	m.rows = nil
	m.err = nil

	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return
	}
	v, err := parseInt(text)
	if err != nil {
		m.err = err
		return
	}
	for _, c := range lowlevel.Codecs() {
		out, err := encode(c, v)
		m.rows = append(m.rows, encodeRow{codec: c.Name(), bytes: out, err: err})
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("LEB128 Encoder"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}
	for _, r := range m.rows {
		b.WriteString(codecStyle.Render(r.codec))
		b.WriteString(" ")
		if r.err != nil {
			b.WriteString(errorStyle.Render("out of range"))
		} else {
			b.WriteString(bytesStyle.Render(r.bytes))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("type an integer • esc quit"))
	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
