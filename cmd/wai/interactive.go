package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	towit "github.com/singlestore-labs/to-wit"
	"github.com/singlestore-labs/to-wit/abi"
	"github.com/singlestore-labs/to-wit/wai"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectFunc modelState = iota
	stateShowDetail
)

type browserModel struct {
	err      error
	session  *towit.Session
	filename string
	dir      abi.Direction
	funcs    []*wai.Function
	detail   viewport.Model
	selected int
	state    modelState
	ready    bool
}

func newBrowserModel(filename string, dir abi.Direction) *browserModel {
	return &browserModel{
		filename: filename,
		dir:      dir,
		state:    stateSelectFunc,
	}
}

type loadedMsg struct {
	err     error
	session *towit.Session
	funcs   []*wai.Function
}

func (m *browserModel) Init() tea.Cmd {
	return m.load
}

func (m *browserModel) load() tea.Msg {
	source, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}

	s := towit.New(towit.WithDirection(m.dir))
	if err := s.Parse(source); err != nil {
		s.Close()
		return loadedMsg{err: err}
	}

	count, err := s.FuncCount()
	if err != nil {
		s.Close()
		return loadedMsg{err: err}
	}
	funcs := make([]*wai.Function, count)
	for i := range funcs {
		if funcs[i], err = s.FuncByIndex(i); err != nil {
			s.Close()
			return loadedMsg{err: err}
		}
	}

	return loadedMsg{session: s, funcs: funcs}
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.session != nil {
				m.session.Close()
			}
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelectFunc && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectFunc && m.selected < len(m.funcs)-1 {
				m.selected++
			}

		case "enter":
			if m.state == stateSelectFunc && len(m.funcs) > 0 {
				m.detail.SetContent(m.renderDetail(m.funcs[m.selected]))
				m.detail.GotoTop()
				m.state = stateShowDetail
			}

		case "esc":
			if m.state == stateShowDetail {
				m.state = stateSelectFunc
			}
		}

	case tea.WindowSizeMsg:
		if !m.ready {
			m.detail = viewport.New(msg.Width, msg.Height-4)
			m.ready = true
		} else {
			m.detail.Width = msg.Width
			m.detail.Height = msg.Height - 4
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.session = msg.session
		m.funcs = msg.funcs
	}

	if m.state == stateShowDetail {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *browserModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.session == nil {
		return "Parsing..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Interface Browser"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectFunc:
		for i, f := range m.funcs {
			line := "  " + m.formatFunc(f)
			if i == m.selected {
				line = selectedStyle.Render("> " + m.formatFunc(f))
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter inspect • q quit"))

	case stateShowDetail:
		b.WriteString(m.detail.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • esc back • q quit"))
	}

	return b.String()
}

func (m *browserModel) formatFunc(f *wai.Function) string {
	var params []string
	for _, p := range f.Params() {
		params = append(params, p.Name+": "+typeStyle.Render(p.Type.String()))
	}
	result := ""
	if r := f.Result(); r != nil {
		result = " -> " + typeStyle.Render(r.String())
	}
	return funcStyle.Render(f.Name()) + "(" + strings.Join(params, ", ") + ")" + result
}

// renderDetail reuses the plain printers, writing into a buffer for the
// viewport.
func (m *browserModel) renderDetail(f *wai.Function) string {
	var b strings.Builder
	b.WriteString(funcStyle.Render(f.Name()))
	b.WriteString("\n\n")

	if err := printFunc(&b, m.session, f); err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", err)))
	}
	return b.String()
}

func runInteractive(filename string, dir abi.Direction) error {
	p := tea.NewProgram(newBrowserModel(filename, dir), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
