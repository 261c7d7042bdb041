package tui

import (
	"strings"

	"github.com/MarcinSonic/TheNewsApp/internal/feed"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

func renderPreview(article *feed.Article, width, height, scroll int) string {
	if article == nil {
		return lipglossCenter("Select an article", len("Select an article"), width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := previewTitleStyle.Width(contentWidth).Render(article.Title)
	section := previewSectionStyle.Render(article.Section)

	byline := "By " + article.Author
	if article.Author == feed.AuthorUnavailable {
		byline = article.Author
	}
	body := byline
	if article.PublishedAt != "" {
		body += "\nPublished " + article.PublishedAt
	}
	body = previewBodyStyle.Width(contentWidth).Render(body)

	link := previewLinkStyle.Width(contentWidth).Render(wrapText("Read more: "+article.URL, contentWidth))

	content := lipgloss.JoinVertical(lipgloss.Left, title, section, "", body, link)

	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}

	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

// wrapText breaks s into lines of at most width cells. Words longer than a line are split.
func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := ""
	for _, w := range words {
		for runewidth.StringWidth(w) > width {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			head := runewidth.Truncate(w, width, "")
			if head == "" {
				head = string([]rune(w)[:1])
			}
			lines = append(lines, head)
			w = w[len(head):]
		}
		switch {
		case line == "":
			line = w
		case runewidth.StringWidth(line)+1+runewidth.StringWidth(w) > width:
			lines = append(lines, line)
			line = w
		default:
			line += " " + w
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
