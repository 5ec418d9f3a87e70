package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/specatlas/specatlas/pkg/graph"
	"github.com/specatlas/specatlas/pkg/graph/traverse"
	"github.com/specatlas/specatlas/pkg/view"
)

// exploreCommand creates the explore command for the interactive TUI.
func (c *CLI) exploreCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore [graph.json]",
		Short: "Explore a spec graph interactively",
		Long: `Explore a spec graph interactively.

Navigate the node list, press enter to focus a node and see its upstream and
downstream dependency chains, press / to search, and press s to cycle the
status filter. Focus follows the same rules as the canvas: re-focusing the
focused node clears the focus.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graph.ReadGraphFile(args[0])
			if err != nil {
				return fmt.Errorf("load graph %s: %w", args[0], err)
			}
			model := newExploreModel(graph.NewIndex(g))
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}
	return cmd
}

// statusCycle is the s-key filter rotation; empty means all statuses.
var statusCycle = [][]string{
	nil,
	{graph.StatusPlanned},
	{graph.StatusInProgress},
	{graph.StatusComplete},
	{graph.StatusArchived},
}

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorBright)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorMuted)
	listFocusStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorOK)
)

// =============================================================================
// exploreModel - Interactive graph exploration
// =============================================================================

// exploreModel is the bubbletea model for graph exploration.
type exploreModel struct {
	idx   *graph.Index
	state view.State

	visible   []string // filtered node IDs, in index order
	cursor    int
	offset    int
	height    int
	searching bool
	statusIdx int
}

func newExploreModel(idx *graph.Index) exploreModel {
	m := exploreModel{idx: idx, height: 20}
	m.refilter()
	return m
}

// refilter recomputes the visible node list from the current state and clamps
// the cursor.
func (m *exploreModel) refilter() {
	m.visible = m.visible[:0]
	for _, n := range m.idx.Nodes() {
		if m.state.Matches(n) {
			m.visible = append(m.visible, n.ID)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

func (m exploreModel) Init() tea.Cmd {
	return nil
}

func (m exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m exploreModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.state = m.state.WithSearch("")
		m.refilter()
	case "enter":
		m.searching = false
	case "backspace":
		if m.state.Search != "" {
			m.state = m.state.WithSearch(m.state.Search[:len(m.state.Search)-1])
			m.refilter()
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.state = m.state.WithSearch(m.state.Search + string(msg.Runes))
			m.refilter()
		}
	}
	return m, nil
}

func (m exploreModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		if m.state.Focused() {
			m.state = m.state.ClickBackground()
			return m, nil
		}
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
			if m.cursor >= m.offset+m.height {
				m.offset = m.cursor - m.height + 1
			}
		}
	case "enter":
		if m.cursor < len(m.visible) {
			m.state = m.state.ClickNode(m.visible[m.cursor])
		}
	case "/":
		m.searching = true
	case "s":
		m.statusIdx = (m.statusIdx + 1) % len(statusCycle)
		m.state = m.state.WithStatuses(statusCycle[m.statusIdx]...)
		m.refilter()
	}
	return m, nil
}

func (m exploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ focus  / search  s status  q quit"))
	b.WriteString("\n")
	b.WriteString(m.filterLine())
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.visible) {
		end = len(m.visible)
	}

	for i := m.offset; i < end; i++ {
		n := m.idx.Node(m.visible[i])

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-40s %s", cursor, truncate(n.DisplayName(), 40), n.Status)
		switch {
		case n.ID == m.state.FocusID:
			b.WriteString(listFocusStyle.Render(line))
		case i == m.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.state.Focused() {
		b.WriteString("\n")
		b.WriteString(m.detailPanel())
	}

	return b.String()
}

func (m exploreModel) filterLine() string {
	var parts []string
	if m.searching || m.state.Search != "" {
		parts = append(parts, "search: "+m.state.Search+cursorMark(m.searching))
	}
	if len(m.state.Statuses) > 0 {
		parts = append(parts, "status: "+strings.Join(m.state.Statuses, ","))
	}
	parts = append(parts, fmt.Sprintf("%d/%d nodes", len(m.visible), m.idx.NodeCount()))
	return listDimStyle.Render(strings.Join(parts, "  ·  "))
}

// detailPanel renders the focused node's dependency chains.
func (m exploreModel) detailPanel() string {
	details := traverse.Details(m.idx, m.state.FocusID)
	if details == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleHighlight.Render(details.Node.DisplayName()))
	if len(details.Node.Tags) > 0 {
		b.WriteString("  " + listDimStyle.Render(strings.Join(details.Node.Tags, " ")))
	}
	b.WriteString("\n")
	b.WriteString(renderGroups("depends on", details.Upstream))
	b.WriteString(renderGroups("depended on by", details.Downstream))
	return b.String()
}

func renderGroups(title string, groups []traverse.DepthGroup) string {
	var b strings.Builder
	b.WriteString(listDimStyle.Render(title) + "\n")
	if len(groups) == 0 {
		b.WriteString("  " + listDimStyle.Render("none") + "\n")
		return b.String()
	}
	for _, grp := range groups {
		names := make([]string, 0, len(grp.Specs))
		for _, n := range grp.Specs {
			names = append(names, n.DisplayName())
		}
		b.WriteString(fmt.Sprintf("  %d: %s\n", grp.Depth, strings.Join(names, ", ")))
	}
	return b.String()
}

func cursorMark(active bool) string {
	if active {
		return "▌"
	}
	return ""
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
