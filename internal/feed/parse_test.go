package feed

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parse(t *testing.T, body string) ([]Article, error) {
	t.Helper()
	return NewParser(quietLogger()).Parse([]byte(body))
}

func TestParseAuthorFromTags(t *testing.T) {
	tests := []struct {
		name string
		tags string
		want string
	}{
		{"no tags", `[]`, AuthorUnavailable},
		{"one tag", `[{"webTitle":"Jane Doe"}]`, "Jane Doe"},
		{"two tags", `[{"webTitle":"Jane Doe"},{"webTitle":"John Roe"}]`, AuthorUnavailable},
		{"tag without name", `[{"id":"profile/x"}]`, AuthorUnavailable},
		{"tags not an array", `"Jane Doe"`, AuthorUnavailable},
	}
	for _, tt := range tests {
		body := `{"response":{"results":[{"webTitle":"T","sectionName":"S","webUrl":"https://example.com/a","tags":` + tt.tags + `}]}}`
		articles, err := parse(t, body)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if len(articles) != 1 {
			t.Fatalf("%s: expected 1 article, got %d", tt.name, len(articles))
		}
		if articles[0].Author != tt.want {
			t.Errorf("%s: author = %q, want %q", tt.name, articles[0].Author, tt.want)
		}
	}
}

func TestParseMissingTags(t *testing.T) {
	articles, err := parse(t, `{"response":{"results":[{"webTitle":"T","sectionName":"S","webUrl":"https://example.com/a"}]}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 1 || articles[0].Author != AuthorUnavailable {
		t.Errorf("expected one article with sentinel author, got %+v", articles)
	}
}

func TestDisplayDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2020-05-01T10:30:00Z", "10:30  01.05.2020"},
		{"1999-12-31T23:59:59Z", "23:59  31.12.1999"},
		{"not-a-date", ""},
		{"", ""},
		{"2020-05-01", ""},
	}
	for _, tt := range tests {
		if got := displayDate(tt.input); got != tt.want {
			t.Errorf("displayDate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseBadDateKeepsArticle(t *testing.T) {
	body := `{"response":{"results":[
		{"webTitle":"A","sectionName":"S","webUrl":"https://example.com/a","webPublicationDate":"not-a-date","tags":[]},
		{"webTitle":"B","sectionName":"S","webUrl":"https://example.com/b","webPublicationDate":"2020-05-01T10:30:00Z","tags":[]},
		{"webTitle":"C","sectionName":"S","webUrl":"https://example.com/c","tags":[]}
	]}}`
	articles, err := parse(t, body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(articles))
	}
	want := []string{"", "10:30  01.05.2020", ""}
	for i, w := range want {
		if articles[i].PublishedAt != w {
			t.Errorf("article %d: PublishedAt = %q, want %q", i, articles[i].PublishedAt, w)
		}
	}
}

func TestParseFields(t *testing.T) {
	body := `{"response":{"status":"ok","results":[{
		"webTitle":"Markets rally",
		"sectionName":"Business",
		"webPublicationDate":"2021-01-02T03:04:05Z",
		"webUrl":"https://www.theguardian.com/business/markets-rally",
		"tags":[{"webTitle":"Jane Doe","type":"contributor"}]
	}]}}`
	articles, err := parse(t, body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Article{
		Title:       "Markets rally",
		Section:     "Business",
		Author:      "Jane Doe",
		PublishedAt: "03:04  02.01.2021",
		URL:         "https://www.theguardian.com/business/markets-rally",
	}
	if len(articles) != 1 || articles[0] != want {
		t.Errorf("Parse = %+v, want %+v", articles, want)
	}
}

func TestParseEmptyBody(t *testing.T) {
	for _, body := range []string{"", "   \n"} {
		articles, err := parse(t, body)
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", body, err)
		}
		if len(articles) != 0 {
			t.Errorf("Parse(%q): expected no articles, got %d", body, len(articles))
		}
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []string{
		`{not json`,
		`[]`,
		`null`,
		`{}`,
		`{"response":"oops"}`,
		`{"response":{}}`,
		`{"response":{"results":null}}`,
		`{"response":{"results":{"webTitle":"x"}}}`,
	}
	for _, body := range tests {
		articles, err := parse(t, body)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Parse(%q): expected *ParseError, got %v", body, err)
		}
		if len(articles) != 0 {
			t.Errorf("Parse(%q): expected no articles, got %d", body, len(articles))
		}
	}
}

func TestParseEmptyResults(t *testing.T) {
	articles, err := parse(t, `{"response":{"results":[]}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("expected no articles, got %d", len(articles))
	}
}

func TestParseSkipsBadElements(t *testing.T) {
	body := `{"response":{"results":[
		{"webTitle":"first","sectionName":"S","webUrl":"https://example.com/1","tags":[]},
		{"sectionName":"S","webUrl":"https://example.com/no-title","tags":[]},
		{"webTitle":"no section","webUrl":"https://example.com/2","tags":[]},
		{"webTitle":"no url","sectionName":"S","tags":[]},
		{"webTitle":42,"sectionName":"S","webUrl":"https://example.com/3","tags":[]},
		{"webTitle":"relative url","sectionName":"S","webUrl":"u","tags":[]},
		"not an object",
		null,
		{"webTitle":"last","sectionName":"S","webUrl":"https://example.com/4","tags":[]}
	]}}`
	articles, skipped, err := NewParser(quietLogger()).parse([]byte(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d: %+v", len(articles), articles)
	}
	if articles[0].Title != "first" || articles[1].Title != "last" {
		t.Errorf("unexpected order: %q, %q", articles[0].Title, articles[1].Title)
	}
	if len(skipped) != 7 {
		t.Fatalf("expected 7 skipped results, got %d", len(skipped))
	}
	wantFields := []string{"webTitle", "sectionName", "webUrl", "webTitle", "webUrl", "", ""}
	for i, f := range wantFields {
		if skipped[i].Field != f {
			t.Errorf("skipped[%d].Field = %q, want %q", i, skipped[i].Field, f)
		}
	}
	if skipped[0].Index != 1 {
		t.Errorf("skipped[0].Index = %d, want 1", skipped[0].Index)
	}
	if !errors.Is(skipped[3], errNotString) {
		t.Errorf("skipped[3] = %v, want errNotString", skipped[3])
	}
	if !errors.Is(skipped[4], errNotWebURL) {
		t.Errorf("skipped[4] = %v, want errNotWebURL", skipped[4])
	}
}

func TestIsWebURL(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"https://www.theguardian.com/science/2020/may/01/a", true},
		{"http://example.com/a", true},
		{"u", false},
		{"/science/a", false},
		{"ftp://example.com/a", false},
		{"https://", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isWebURL(tt.input); got != tt.want {
			t.Errorf("isWebURL(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
