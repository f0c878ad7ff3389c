package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/laneviz/laneviz/pkg/layout"
	"github.com/laneviz/laneviz/pkg/model"
	"github.com/laneviz/laneviz/pkg/parser"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// newInspectCmd creates the inspect command for browsing a diagram
// interactively.
func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse lanes and nodes interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(args[0])
			if err != nil {
				return err
			}

			d := parser.Parse(source)
			layout.Build(d)
			if d.NodeCount() == 0 {
				printWarning("No nodes found in %s", args[0])
				return nil
			}

			m := newDiagramModel(d)
			_, err = tea.NewProgram(m).Run()
			return err
		},
	}
}

// =============================================================================
// DiagramModel - Interactive lane/node browser
// =============================================================================

// inspectRow is one selectable row: a lane header or a node.
type inspectRow struct {
	lane *model.Lane
	node *model.Node
}

// DiagramModel is the bubbletea model for browsing a parsed diagram.
type DiagramModel struct {
	rows   []inspectRow
	cursor int
	height int
	offset int
}

// newDiagramModel flattens the diagram into rows of lane headers and nodes.
func newDiagramModel(d *model.Diagram) DiagramModel {
	var rows []inspectRow
	for _, l := range d.Lanes() {
		rows = append(rows, inspectRow{lane: l})
		for _, n := range l.Nodes {
			rows = append(rows, inspectRow{node: n})
		}
	}
	for _, n := range d.FreeNodes() {
		rows = append(rows, inspectRow{node: n})
	}

	m := DiagramModel{rows: rows, height: 15}
	// Start on the first node rather than a lane header.
	for i, r := range rows {
		if r.node != nil {
			m.cursor = i
			break
		}
	}
	return m
}

func (m DiagramModel) Init() tea.Cmd {
	return nil
}

func (m DiagramModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.moveCursor(-1)
		case "down", "j":
			m.moveCursor(1)
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 10
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

// moveCursor advances the cursor past lane headers in the given direction.
func (m *DiagramModel) moveCursor(delta int) {
	i := m.cursor + delta
	for i >= 0 && i < len(m.rows) && m.rows[i].node == nil {
		i += delta
	}
	if i < 0 || i >= len(m.rows) {
		return
	}
	m.cursor = i
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m DiagramModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Inspect Diagram"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		if r.lane != nil {
			b.WriteString(StyleDim.Render(r.lane.Label) + "\n")
			continue
		}

		cursor := "  "
		style := listNormalStyle
		if i == m.cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString("  " + cursor + style.Render(fmt.Sprintf("%-16s", r.node.ID)) + " " + listDimStyle.Render(firstLine(r.node.Label)) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detailView())
	return b.String()
}

// detailView renders attributes of the selected node.
func (m DiagramModel) detailView() string {
	if m.cursor >= len(m.rows) || m.rows[m.cursor].node == nil {
		return ""
	}
	n := m.rows[m.cursor].node

	laneName := "(none)"
	if n.Lane != nil {
		laneName = n.Lane.Label
	}

	var b strings.Builder
	b.WriteString(listDimStyle.Render("─────────────────────────────") + "\n")
	b.WriteString(detailLine("id", n.ID))
	b.WriteString(detailLine("label", firstLine(n.Label)))
	b.WriteString(detailLine("lane", laneName))
	b.WriteString(detailLine("category", string(n.Category)))
	b.WriteString(detailLine("position", fmt.Sprintf("%.0f, %.0f", n.X, n.Y)))
	b.WriteString(detailLine("size", fmt.Sprintf("%.0f × %.0f", n.W, n.H)))
	return b.String()
}

func detailLine(key, value string) string {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(10)
	return keyStyle.Render(key) + " " + StyleValue.Render(value) + "\n"
}
