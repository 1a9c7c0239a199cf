package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/coffee-is-power/jerris/classfile"
	"github.com/coffee-is-power/jerris/constantpool"
)

var browseCmd = &cobra.Command{
	Use:   "browse <class>",
	Short: "Browse the constant pool interactively",
	Long:  `Open a class file in an interactive constant pool browser.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	p := tea.NewProgram(newBrowseModel(args[0]), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browseState int

const (
	stateList browseState = iota
	stateDetail
)

type entryRow struct {
	index constantpool.Index
	entry constantpool.Constant
	kind  string
	value string
}

type browseModel struct {
	err      error
	cls      *classfile.Class
	filename string
	rows     []entryRow
	visible  []int
	selected int
	filter   textinput.Model
	state    browseState
}

type classLoadedMsg struct {
	err error
	cls *classfile.Class
}

func newBrowseModel(filename string) *browseModel {
	filter := textinput.New()
	filter.Placeholder = "filter"
	filter.Prompt = "/ "
	filter.Width = 40

	return &browseModel{
		filename: filename,
		filter:   filter,
		state:    stateList,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return m.loadClass
}

func (m *browseModel) loadClass() tea.Msg {
	c, err := openClass(m.filename)
	if err != nil {
		return classLoadedMsg{err: err}
	}
	return classLoadedMsg{cls: c}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filter.Focused() {
			switch msg.String() {
			case "enter", "esc":
				m.filter.Blur()
				return m, nil
			case "ctrl+c":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "/":
			if m.state == stateList {
				m.filter.Focus()
				return m, textinput.Blink
			}

		case "up", "k":
			if m.state == stateList && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateList && m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "enter":
			if m.state == stateList && len(m.visible) > 0 {
				m.state = stateDetail
			}

		case "esc":
			switch m.state {
			case stateDetail:
				m.state = stateList
			case stateList:
				m.filter.SetValue("")
				m.applyFilter()
			}
		}

	case classLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.cls = msg.cls
		for i, entry := range m.cls.Pool.All() {
			m.rows = append(m.rows, entryRow{
				index: i,
				entry: entry,
				kind:  entry.Tag().String(),
				value: constantValue(m.cls.Pool, entry),
			})
		}
		m.applyFilter()
	}

	return m, nil
}

// applyFilter recomputes the visible rows from the filter text.
func (m *browseModel) applyFilter() {
	query := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i, row := range m.rows {
		if query == "" ||
			strings.Contains(strings.ToLower(row.kind), query) ||
			strings.Contains(strings.ToLower(row.value), query) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = len(m.visible) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *browseModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.cls == nil {
		return "Loading class..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("jerris"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n")
	if name, err := m.cls.Name(); err == nil {
		b.WriteString(fmt.Sprintf("%s  %s  %s\n", name, m.cls.Version, m.cls.AccessFlags))
	}
	b.WriteString("\n")

	switch m.state {
	case stateList:
		if m.filter.Focused() || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString("\n\n")
		}
		for pos, idx := range m.visible {
			row := m.rows[idx]
			line := fmt.Sprintf("#%-6d %s %s",
				row.index,
				kindStyle.Render(fmt.Sprintf("%-20s", row.kind)),
				row.value)
			if pos == m.selected {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		if len(m.visible) == 0 {
			b.WriteString(helpStyle.Render("no matching entries"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter detail • / filter • q quit"))

	case stateDetail:
		row := m.rows[m.visible[m.selected]]
		b.WriteString(fmt.Sprintf("Entry #%d\n\n", row.index))
		b.WriteString(fmt.Sprintf("  Kind: %s\n", kindStyle.Render(row.kind)))
		b.WriteString(fmt.Sprintf("  Value: %s\n", valueStyle.Render(row.value)))
		b.WriteString(fmt.Sprintf("  Raw: %+v\n", row.entry))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("esc back • q quit"))
	}

	return b.String()
}
