package inspect

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/1broseidon/edgegrab/internal/edges"
	"github.com/1broseidon/edgegrab/internal/ipc"
)

var (
	connectedDot = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	offlineDot   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	barStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("250")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	sideHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	detailStyle = lipgloss.NewStyle().Padding(0, 1)
)

var sideOrder = []string{"left", "right", "top", "bottom"}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := m.renderStatusBar()
	helpBar := renderHelpBar(m.width)

	contentHeight := m.height - lipgloss.Height(statusBar) - lipgloss.Height(helpBar)
	if contentHeight < 1 {
		contentHeight = 1
	}

	detailWidth := m.width - m.listWidth() - 1
	if detailWidth < 10 {
		detailWidth = 10
	}
	detail := m.renderDetail(detailWidth, contentHeight)

	content := lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), detail)

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		content,
		helpBar,
	)
}

// renderStatusBar renders the daemon connection status bar.
func (m model) renderStatusBar() string {
	var status string
	if m.status == nil {
		dot := offlineDot.Render("●")
		status = dot + " daemon unreachable"
		if m.lastErr != "" {
			status += "  " + m.lastErr
		}
	} else {
		dot := connectedDot.Render("●")
		uptime := (time.Duration(m.status.UptimeSeconds) * time.Second).String()
		parts := []string{
			dot + " edgegrab daemon",
			"up " + uptime,
			fmt.Sprintf("step %dpx", m.status.NudgeStep),
		}
		if m.status.GrabActive {
			grab := fmt.Sprintf("grab: %s 0x%08x", m.status.GrabKind, m.status.GrabWindow)
			if m.status.LastActionSnap {
				grab += " (snap)"
			}
			parts = append(parts, grab)
		}
		if m.paused {
			parts = append(parts, "paused")
		}
		status = strings.Join(parts, "  ")
	}

	return barStyle.Width(m.width).Render(status)
}

// renderDetail renders the edge map pane for the selected window.
func (m model) renderDetail(width, height int) string {
	lines := m.detailLines()

	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}

	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(ansi.Truncate(line, width-2, "…"))
	}

	return detailStyle.Width(width).Render(sb.String())
}

func (m model) detailLines() []string {
	if m.edges == nil {
		return []string{dimStyle.Render("no edge data")}
	}

	title := m.edges.Title
	if title == "" {
		title = "(untitled)"
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("Edges for 0x%08x  %s", m.edges.Window, title))
	lines = append(lines, "")

	bySide := make(map[string][]ipc.EdgeInfo)
	for _, e := range m.edges.Edges {
		bySide[e.Side] = append(bySide[e.Side], e)
	}

	for _, side := range sideOrder {
		es := bySide[side]
		lines = append(lines, sideHeaderStyle.Render(fmt.Sprintf("%s (%d)", side, len(es))))
		if len(es) == 0 {
			lines = append(lines, dimStyle.Render("  none"))
			continue
		}
		for _, e := range es {
			lines = append(lines, formatEdge(e))
		}
	}

	if m.status != nil && m.status.GrabActive && len(m.status.Sides) > 0 {
		lines = append(lines, "")
		lines = append(lines, sideHeaderStyle.Render("resistance"))
		for _, side := range sideOrder {
			st, ok := m.status.Sides[side]
			if !ok {
				continue
			}
			lines = append(lines, formatSideStatus(side, st))
		}
	}

	return lines
}

func formatEdge(e ipc.EdgeInfo) string {
	switch e.Side {
	case "left", "right":
		return fmt.Sprintf("  %-8s x=%-6d y %d..%d", e.Kind, e.Position, e.Y, e.Y+e.Height)
	default:
		return fmt.Sprintf("  %-8s y=%-6d x %d..%d", e.Kind, e.Position, e.X, e.X+e.Width)
	}
}

func formatSideStatus(side string, st edges.SideStatus) string {
	parts := []string{fmt.Sprintf("  %-7s buildup %d", side, st.Buildup)}
	if st.TimerArmed {
		parts = append(parts, fmt.Sprintf("timer armed at %d", st.ArmedEdgePos))
	}
	if st.TimerElapsed {
		parts = append(parts, "timer elapsed")
	}
	if st.AllowPastScreen {
		parts = append(parts, "past-screen ok")
	}
	return strings.Join(parts, "  ")
}

// renderHelpBar renders the bottom help/keybinding bar.
func renderHelpBar(width int) string {
	help := "up/down: select window  p: pause  r: refresh  q/ctrl-c: quit"
	return helpStyle.Width(width).Render(help)
}
