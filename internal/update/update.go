// Package update looks up the latest published release of newsapp.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MarcinSonic/TheNewsApp/internal/feed"
)

// DefaultReleasesURL is the GitHub endpoint for the latest release.
const DefaultReleasesURL = "https://api.github.com/repos/MarcinSonic/TheNewsApp/releases/latest"

const defaultTimeout = 5 * time.Second

type release struct {
	TagName string `json:"tag_name"`
}

// Checker compares the running version against the latest release.
// Lookups go through a feed.Fetcher so they share its timeouts and User-Agent.
type Checker struct {
	fetcher feed.Fetcher
	url     string
	timeout time.Duration
	log     *slog.Logger
}

type CheckerOpts struct {
	Fetcher feed.Fetcher
	// URL defaults to DefaultReleasesURL.
	URL     string
	Timeout time.Duration
	Log     *slog.Logger
}

func NewChecker(opts CheckerOpts) *Checker {
	if opts.Fetcher == nil {
		opts.Fetcher = feed.NewHTTPFetcher(feed.FetcherOpts{})
	}
	if opts.URL == "" {
		opts.URL = DefaultReleasesURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	return &Checker{fetcher: opts.Fetcher, url: opts.URL, timeout: opts.Timeout, log: opts.Log}
}

// Newer returns the latest release version when it differs from current.
// Development builds are never checked. Lookup failures are logged and
// reported as no update.
func (c *Checker) Newer(ctx context.Context, current string) (string, bool) {
	current = strings.TrimPrefix(current, "v")
	if current == "" || current == "dev" {
		return "", false
	}

	latest, err := c.latest(ctx)
	if err != nil {
		c.log.Debug("update check failed", "err", err)
		return "", false
	}
	if latest == "" || latest == current {
		return "", false
	}
	c.log.Info("update available", "current", current, "latest", latest)
	return latest, true
}

func (c *Checker) latest(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := c.fetcher.Fetch(ctx, c.url)
	if err != nil {
		return "", err
	}
	var rel release
	if err := json.Unmarshal(body, &rel); err != nil {
		return "", fmt.Errorf("decoding release: %w", err)
	}
	return strings.TrimPrefix(rel.TagName, "v"), nil
}
