package ux

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/autodoc-cli/autodoc/internal/tracker"
)

const panelWidth = 78

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1).
			Width(panelWidth)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("6"))

	labelStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

// TicketPanel renders a bordered summary of the resolved ticket context.
func TicketPanel(tc *tracker.TicketContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Ticket:"), tc.ID)
	fmt.Fprintf(&b, "%s  %s\n", labelStyle.Render("Title:"), tc.Title)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Status:"), valueOr(tc.Status, "unknown"))
	if assignee, ok := tc.Fields["assignee"]; ok {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Assignee:"), assignee)
	}
	if tc.Parent != nil {
		fmt.Fprintf(&b, "%s %s — %s\n", labelStyle.Render("Parent:"), tc.Parent.ID, tc.Parent.Title)
	}
	b.WriteString("\n")
	b.WriteString(valueOr(tc.Description, dimStyle.Render("(no description)")))

	return panelTitleStyle.Render("Ticket "+tc.ID) + "\n" + panelStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// DocumentPanel renders a generated draft inside a bordered panel.
func DocumentPanel(content string) string {
	return panelStyle.Render(strings.TrimRight(content, "\n"))
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
