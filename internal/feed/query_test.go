package feed

import (
	"net/url"
	"strings"
	"testing"
)

func TestBuildURLAllSubsets(t *testing.T) {
	all := AllSections()
	for mask := 0; mask < 1<<len(all); mask++ {
		var enabled []Section
		// Insert in reverse so ordering must come from the builder.
		for i := len(all) - 1; i >= 0; i-- {
			if mask&(1<<i) != 0 {
				enabled = append(enabled, all[i])
			}
		}

		raw, err := BuildURL(DefaultEndpoint, QuerySpec{Sections: enabled, APIKey: "test"})
		if err != nil {
			t.Fatalf("BuildURL(mask %05b): %v", mask, err)
		}
		u, err := url.Parse(raw)
		if err != nil {
			t.Fatalf("parsing %q: %v", raw, err)
		}
		q := u.Query()

		var want []string
		for i, s := range all {
			if mask&(1<<i) != 0 {
				want = append(want, string(s))
			}
		}

		if len(want) == 0 {
			if q.Has("section") {
				t.Errorf("mask %05b: expected no section parameter, got %q", mask, q.Get("section"))
			}
		} else if got := q.Get("section"); got != strings.Join(want, "|") {
			t.Errorf("mask %05b: section = %q, want %q", mask, got, strings.Join(want, "|"))
		}
		if q.Get("show-tags") != "contributor" {
			t.Errorf("mask %05b: show-tags = %q, want contributor", mask, q.Get("show-tags"))
		}
		if q.Get("api-key") != "test" {
			t.Errorf("mask %05b: api-key = %q, want test", mask, q.Get("api-key"))
		}
	}
}

func TestBuildURLNoTrailingPipe(t *testing.T) {
	raw, err := BuildURL(DefaultEndpoint, QuerySpec{Sections: []Section{Technology}, APIKey: "k"})
	if err != nil {
		t.Fatalf("BuildURL: %v", err)
	}
	u, _ := url.Parse(raw)
	if got := u.Query().Get("section"); got != "technology" {
		t.Errorf("section = %q, want %q", got, "technology")
	}
}

func TestBuildURLDeduplicatesAndIgnoresUnknown(t *testing.T) {
	spec := QuerySpec{Sections: []Section{Science, "sport", Business, Science}, APIKey: "k"}
	raw, err := BuildURL(DefaultEndpoint, spec)
	if err != nil {
		t.Fatalf("BuildURL: %v", err)
	}
	u, _ := url.Parse(raw)
	if got := u.Query().Get("section"); got != "business|science" {
		t.Errorf("section = %q, want %q", got, "business|science")
	}
}

func TestBuildURLEmptyAPIKeyStillPresent(t *testing.T) {
	raw, err := BuildURL(DefaultEndpoint, QuerySpec{})
	if err != nil {
		t.Fatalf("BuildURL: %v", err)
	}
	u, _ := url.Parse(raw)
	if !u.Query().Has("api-key") {
		t.Errorf("expected api-key parameter in %q", raw)
	}
}

func TestBuildURLKeepsEndpointQuery(t *testing.T) {
	raw, err := BuildURL("https://example.com/search?order-by=newest&section=sport", QuerySpec{APIKey: "k"})
	if err != nil {
		t.Fatalf("BuildURL: %v", err)
	}
	u, _ := url.Parse(raw)
	q := u.Query()
	if q.Get("order-by") != "newest" {
		t.Errorf("order-by = %q, want newest", q.Get("order-by"))
	}
	if q.Has("section") {
		t.Errorf("expected endpoint section to be dropped, got %q", q.Get("section"))
	}
	if u.Path != "/search" {
		t.Errorf("path = %q, want /search", u.Path)
	}
}

func TestBuildURLRejectsBadEndpoint(t *testing.T) {
	for _, endpoint := range []string{"", "content.guardianapis.com/search", "ftp://example.com", "http://", "://bad"} {
		if _, err := BuildURL(endpoint, QuerySpec{APIKey: "k"}); err == nil {
			t.Errorf("BuildURL(%q): expected error", endpoint)
		}
	}
}

func TestRedactURL(t *testing.T) {
	got := redactURL("https://example.com/search?api-key=secret&show-tags=contributor")
	if strings.Contains(got, "secret") {
		t.Errorf("redactURL leaked key: %s", got)
	}
	if !strings.Contains(got, "show-tags=contributor") {
		t.Errorf("redactURL dropped other params: %s", got)
	}
}

func TestParseSection(t *testing.T) {
	if s, err := ParseSection("lifeandstyle"); err != nil || s != LifeAndStyle {
		t.Errorf("ParseSection(lifeandstyle) = %q, %v", s, err)
	}
	if _, err := ParseSection("sport"); err == nil {
		t.Error("ParseSection(sport): expected error")
	}
}
