package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type statusInfo struct {
	articleCount  int
	filterLabel   string
	skipped       int
	updateVersion string
	loading       bool
	filtering     bool
}

func renderStatusBar(s statusInfo, width int) string {
	accent := lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	left := fmt.Sprintf(" %d articles · %s", s.articleCount, s.filterLabel)
	if s.skipped > 0 {
		left += fmt.Sprintf(" · %d skipped", s.skipped)
	}
	if s.loading {
		left += " (loading...)"
	}
	if s.updateVersion != "" {
		left += " · " + accent.Render("v"+s.updateVersion+" available")
	}

	right := " o open  r reload  f sections  ? help  q quit "
	if s.filtering {
		right = " ←/→ move  space toggle  esc done "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
