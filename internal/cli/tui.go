package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/rosview/pkg/graph"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// PathListModel - Interactive path selection
// =============================================================================

// PathEntry is one row of the path picker.
type PathEntry struct {
	Name  string
	Nodes []string
}

// PathListModel is the bubbletea model for interactive path selection.
type PathListModel struct {
	Paths    []PathEntry
	Cursor   int
	Selected *PathEntry
	Height   int
	Offset   int
	Omit     graph.Omit
}

// NewPathListModel creates a picker over paths in insertion order.
func NewPathListModel(paths *graph.Paths, omit graph.Omit) PathListModel {
	m := PathListModel{Height: 15, Omit: omit}
	for _, name := range paths.Names() {
		nodes, _ := paths.Get(name)
		m.Paths = append(m.Paths, PathEntry{Name: name, Nodes: nodes})
	}
	return m
}

func (m PathListModel) Init() tea.Cmd {
	return nil
}

func (m PathListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Paths)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Paths) == 0 {
				return m, tea.Quit
			}
			p := m.Paths[m.Cursor]
			m.Selected = &p
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m PathListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Path"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Paths))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Paths[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, p.Name, fmt.Sprint(len(p.Nodes)), pathSpan(p.Nodes, m.Omit)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Path", "Nodes", "Span").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col >= 2 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Paths))))

	return b.String()
}
