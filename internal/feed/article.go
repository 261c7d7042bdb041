package feed

import (
	"fmt"

	"github.com/samber/lo"
)

// AuthorUnavailable is used when an article does not carry exactly one contributor tag.
const AuthorUnavailable = "Author Unavailable"

// Article is a normalized search result.
type Article struct {
	Title       string `json:"title"`
	Section     string `json:"section"`
	Author      string `json:"author"`
	PublishedAt string `json:"published_at"`
	URL         string `json:"url"`
}

// Section is a content category recognized by the search API.
type Section string

const (
	Business     Section = "business"
	Fashion      Section = "fashion"
	LifeAndStyle Section = "lifeandstyle"
	Science      Section = "science"
	Technology   Section = "technology"
)

// AllSections returns every known section in canonical order.
func AllSections() []Section {
	return []Section{Business, Fashion, LifeAndStyle, Science, Technology}
}

// ParseSection validates a section name.
func ParseSection(name string) (Section, error) {
	s := Section(name)
	if !lo.Contains(AllSections(), s) {
		return "", fmt.Errorf("unknown section %q (valid: business, fashion, lifeandstyle, science, technology)", name)
	}
	return s, nil
}

// QuerySpec carries everything needed to build a search request.
// It is built by the caller for every query.
type QuerySpec struct {
	Sections []Section
	APIKey   string
}

// OrderedSections returns the enabled known sections in canonical order, without duplicates.
func (q QuerySpec) OrderedSections() []Section {
	return lo.Filter(AllSections(), func(s Section, _ int) bool {
		return lo.Contains(q.Sections, s)
	})
}
