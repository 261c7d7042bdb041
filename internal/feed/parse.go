package feed

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"time"
)

const (
	sourceDateLayout  = "2006-01-02T15:04:05Z"
	displayDateLayout = "15:04  02.01.2006"
)

var (
	errMissing   = errors.New("missing")
	errNotString = errors.New("not a string")
	errNotWebURL = errors.New("not an absolute http(s) url")
)

// Parser turns a search response body into articles.
type Parser struct {
	log *slog.Logger
}

func NewParser(log *slog.Logger) *Parser {
	if log == nil {
		log = slog.Default()
	}
	return &Parser{log: log}
}

type envelope struct {
	Response *struct {
		Results json.RawMessage `json:"results"`
	} `json:"response"`
}

// Parse returns the articles in body in response order. An empty body yields an
// empty list. A body that is not a search response yields a *ParseError.
// Results missing a required field are logged and skipped.
func (p *Parser) Parse(body []byte) ([]Article, error) {
	articles, _, err := p.parse(body)
	return articles, err
}

func (p *Parser) parse(body []byte) ([]Article, []*ElementError, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return []Article{}, nil, nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return []Article{}, nil, &ParseError{Reason: "invalid JSON object", Err: err}
	}
	if env.Response == nil {
		return []Article{}, nil, &ParseError{Reason: `missing "response" object`}
	}
	if len(env.Response.Results) == 0 || string(env.Response.Results) == "null" {
		return []Article{}, nil, &ParseError{Reason: `missing "response.results" array`}
	}
	var results []json.RawMessage
	if err := json.Unmarshal(env.Response.Results, &results); err != nil {
		return []Article{}, nil, &ParseError{Reason: `"response.results" is not an array`, Err: err}
	}

	articles := make([]Article, 0, len(results))
	var skipped []*ElementError
	for i, raw := range results {
		a, err := p.parseResult(i, raw)
		if err != nil {
			p.log.Warn("skipping result", "index", i, "field", err.Field, "err", err.Err)
			skipped = append(skipped, err)
			continue
		}
		articles = append(articles, a)
	}
	return articles, skipped, nil
}

func (p *Parser) parseResult(i int, raw json.RawMessage) (Article, *ElementError) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		if err == nil {
			err = errors.New("null result")
		}
		return Article{}, &ElementError{Index: i, Err: err}
	}

	var a Article
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"webTitle", &a.Title},
		{"sectionName", &a.Section},
		{"webUrl", &a.URL},
	} {
		v, err := stringField(fields, f.key)
		if err != nil {
			return Article{}, &ElementError{Index: i, Field: f.key, Err: err}
		}
		*f.dst = v
	}
	if !isWebURL(a.URL) {
		return Article{}, &ElementError{Index: i, Field: "webUrl", Err: errNotWebURL}
	}

	if v, err := stringField(fields, "webPublicationDate"); err == nil {
		a.PublishedAt = displayDate(v)
		if a.PublishedAt == "" {
			p.log.Debug("unparsable publication date", "index", i, "value", v)
		}
	}

	a.Author = p.author(i, fields["tags"])
	return a, nil
}

// author returns the single contributor's name, or AuthorUnavailable.
func (p *Parser) author(i int, raw json.RawMessage) string {
	if len(raw) == 0 {
		return AuthorUnavailable
	}
	var tags []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &tags); err != nil {
		p.log.Debug("ignoring malformed tags", "index", i, "err", err)
		return AuthorUnavailable
	}
	if len(tags) != 1 {
		return AuthorUnavailable
	}
	name, err := stringField(tags[0], "webTitle")
	if err != nil {
		p.log.Debug("contributor tag without name", "index", i, "err", err)
		return AuthorUnavailable
	}
	return name
}

func stringField(fields map[string]json.RawMessage, key string) (string, error) {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return "", errMissing
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", errNotString
	}
	return s, nil
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// displayDate reformats an API timestamp for display, or returns "" if it does not parse.
func displayDate(s string) string {
	t, err := time.Parse(sourceDateLayout, s)
	if err != nil {
		return ""
	}
	return t.Format(displayDateLayout)
}
