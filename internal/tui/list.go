package tui

import (
	"strings"

	"github.com/MarcinSonic/TheNewsApp/internal/feed"
	"github.com/mattn/go-runewidth"
)

func renderListItem(a feed.Article, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + truncateStr(a.Title, width-4))
	} else {
		title = itemTitleStyle.Render("  " + truncateStr(a.Title, width-4))
	}

	meta := metaLine(a)
	meta = "  " + itemSectionStyle.Render(a.Section) + itemMetaStyle.Render(truncateStr(meta, width-4-runewidth.StringWidth(a.Section)))

	return title + "\n" + meta
}

// metaLine is the part of the second list row that follows the section.
func metaLine(a feed.Article) string {
	s := " · " + a.Author
	if a.PublishedAt != "" {
		s += " · " + a.PublishedAt
	}
	return s
}

// truncateStr cuts s to n terminal cells, marking the cut with "...".
func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= n {
		return s
	}
	if n <= 3 {
		return runewidth.Truncate(s, n, "")
	}
	return runewidth.Truncate(s, n, "...")
}

func renderList(articles []feed.Article, cursor int, height int, width int, empty string) string {
	if len(articles) == 0 {
		return lipglossCenter(emptyStateStyle.Render(empty), runewidth.StringWidth(empty), width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(articles) {
		end = len(articles)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(articles[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}

	return b.String()
}

func lipglossCenter(s string, sWidth, width, height int) string {
	pad := (width - sWidth) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
