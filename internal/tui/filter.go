package tui

import (
	"strings"

	"github.com/MarcinSonic/TheNewsApp/internal/feed"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
)

// filterBar is the section settings row. No active section means all sections.
type filterBar struct {
	sections     []feed.Section
	active       map[feed.Section]bool
	filterMode   bool
	filterCursor int
}

func newFilterBar(enabled []feed.Section) filterBar {
	f := filterBar{
		sections: feed.AllSections(),
		active:   make(map[feed.Section]bool),
	}
	for _, s := range enabled {
		f.active[s] = true
	}
	return f
}

// toggle flips s and reports whether it is now enabled.
func (f *filterBar) toggle(s feed.Section) bool {
	if f.active[s] {
		delete(f.active, s)
		return false
	}
	f.active[s] = true
	return true
}

func (f *filterBar) current() (feed.Section, bool) {
	if f.filterCursor < 0 || f.filterCursor >= len(f.sections) {
		return "", false
	}
	return f.sections[f.filterCursor], true
}

func (f *filterBar) activeSections() []feed.Section {
	return lo.Filter(f.sections, func(s feed.Section, _ int) bool { return f.active[s] })
}

func (f *filterBar) activeLabel() string {
	active := f.activeSections()
	if len(active) == 0 {
		return "All"
	}
	return strings.Join(lo.Map(active, func(s feed.Section, _ int) string { return string(s) }), ", ")
}

func (f *filterBar) render(width int) string {
	sep := tabSeparatorStyle.Render(" · ")
	var parts []string

	if len(f.active) == 0 {
		parts = append(parts, tabActiveStyle.Render("All"))
	} else {
		parts = append(parts, tabInactiveStyle.Render("All"))
	}

	for i, s := range f.sections {
		style := tabInactiveStyle
		if f.active[s] {
			style = tabActiveStyle
		}
		label := string(s)
		if f.filterMode && i == f.filterCursor {
			label = "[" + label + "]"
		}
		parts = append(parts, style.Render(label))
	}

	// Stop adding tabs once the row would overflow
	var row string
	for i, part := range parts {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}

	barStyle := lipgloss.NewStyle().
		Background(colorSurface).
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(row)
}
