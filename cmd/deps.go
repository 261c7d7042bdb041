package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/MarcinSonic/TheNewsApp/internal/config"
	"github.com/MarcinSonic/TheNewsApp/internal/feed"
	"github.com/MarcinSonic/TheNewsApp/internal/logging"
	"github.com/MarcinSonic/TheNewsApp/internal/netcheck"
	"github.com/MarcinSonic/TheNewsApp/internal/update"
)

func loadConfig() (*config.Config, string, error) {
	path := flagConfig
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", fmt.Errorf("loading config: %w", err)
	}
	return cfg, path, nil
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	level := cfg.LogLevel
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	return logging.New(level, w)
}

func fetcherOpts(cfg *config.Config) feed.FetcherOpts {
	return feed.FetcherOpts{
		ConnectTimeout: cfg.ConnectTimeoutDuration(),
		ReadTimeout:    cfg.ReadTimeoutDuration(),
		RateLimit:      cfg.RateLimit,
		UserAgent:      "newsapp/" + version,
	}
}

func newPipeline(cfg *config.Config, log *slog.Logger) *feed.Pipeline {
	fetcher := feed.NewHTTPFetcher(fetcherOpts(cfg))
	return feed.NewPipeline(feed.PipelineOpts{
		Endpoint: cfg.Endpoint,
		Fetcher:  fetcher,
		Parser:   feed.NewParser(log),
		Probe:    netcheck.NewProber(netcheck.ProberOpts{Fresh: netcheck.DefaultFresh}).Probe,
		Log:      log,
	})
}

// newUpdateChecker gets its own fetcher so release lookups do not use up the
// news API rate limit.
func newUpdateChecker(cfg *config.Config, log *slog.Logger) *update.Checker {
	opts := fetcherOpts(cfg)
	opts.RateLimit = 0
	return update.NewChecker(update.CheckerOpts{
		Fetcher: feed.NewHTTPFetcher(opts),
		Log:     log,
	})
}
