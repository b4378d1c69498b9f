package dashboard

import "github.com/charmbracelet/lipgloss"

// Group badge colors for the well-known groups; anything else gets gray.
var groupColors = map[string]lipgloss.AdaptiveColor{
	"Friends": {Light: "2", Dark: "10"},    // green
	"Family":  {Light: "5", Dark: "13"},    // magenta
	"Work":    {Light: "4", Dark: "12"},    // blue
	"Other":   {Light: "240", Dark: "245"}, // gray
}

// GroupBadge returns the group label styled by its color.
func GroupBadge(group string) string {
	color, ok := groupColors[group]
	if !ok {
		color = lipgloss.AdaptiveColor{Light: "240", Dark: "245"}
	}
	return lipgloss.NewStyle().Foreground(color).Render(group)
}

// TitleStyle renders section titles.
func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})
}

// WarningStyle renders non-fatal warnings (skipped fields, save failures).
func WarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "3", Dark: "11"})
}

// ErrorStyle renders blocking validation errors.
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})
}

// StatusStyle renders the transient status line under the content area.
func StatusStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})
}

// FrameStyle draws the rounded border around the content area.
func FrameStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"}).
		Padding(0, 1)
}

// CursorMarker is the prefix shown on the selected menu row.
const CursorMarker = "▸ "
