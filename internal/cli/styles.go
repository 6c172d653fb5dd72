package cli

import "github.com/charmbracelet/lipgloss"

var (
	colorSuccess = lipgloss.Color("10")
	colorWarning = lipgloss.Color("11")
	colorError   = lipgloss.Color("9")
	colorWhite   = lipgloss.Color("15")
	colorBlack   = lipgloss.Color("0")
)

// Badge styles for status indicators.
var (
	badgeOK = lipgloss.NewStyle().
		Background(colorSuccess).
		Foreground(colorBlack).
		Padding(0, 1).
		Bold(true)

	badgeWarn = lipgloss.NewStyle().
			Background(colorWarning).
			Foreground(colorBlack).
			Padding(0, 1).
			Bold(true)

	badgeError = lipgloss.NewStyle().
			Background(colorError).
			Foreground(colorWhite).
			Padding(0, 1).
			Bold(true)
)

// RenderBadge renders a styled badge, or "[TEXT]" without colors.
func RenderBadge(text string, style lipgloss.Style) string {
	if !EnableColors() {
		return "[" + text + "]"
	}
	return style.Render(text)
}

// RenderOKBadge renders an "OK" badge.
func RenderOKBadge() string {
	return RenderBadge("OK", badgeOK)
}

// RenderWarnBadge renders a "WARN" badge.
func RenderWarnBadge() string {
	return RenderBadge("WARN", badgeWarn)
}

// RenderErrorBadge renders an "ERROR" badge.
func RenderErrorBadge() string {
	return RenderBadge("ERROR", badgeError)
}
