package feed

import (
	"context"
	"errors"
	"log/slog"
)

// Reason tells the presentation layer why a load produced no articles.
type Reason int

const (
	ReasonOK Reason = iota
	ReasonNoNetwork
	ReasonFetchFailed
	ReasonParseFailed
)

func (r Reason) String() string {
	switch r {
	case ReasonOK:
		return "ok"
	case ReasonNoNetwork:
		return "no network"
	case ReasonFetchFailed:
		return "fetch failed"
	case ReasonParseFailed:
		return "parse failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of one load. Articles is empty whenever Reason is not ReasonOK.
type Result struct {
	Articles []Article
	Reason   Reason
	Err      error
	// Skipped counts results dropped for missing required fields.
	Skipped int
}

// Probe reports whether the endpoint is reachable at all.
type Probe func(ctx context.Context, endpoint string) error

type PipelineOpts struct {
	Endpoint string
	Fetcher  Fetcher
	Parser   *Parser
	// Probe is optional; when set it runs before every fetch.
	Probe Probe
	Log   *slog.Logger
}

// Pipeline builds the query, fetches it and parses the response.
// It holds no per-query state and is safe for concurrent use.
type Pipeline struct {
	endpoint string
	fetcher  Fetcher
	parser   *Parser
	probe    Probe
	log      *slog.Logger
}

func NewPipeline(opts PipelineOpts) *Pipeline {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.Fetcher == nil {
		opts.Fetcher = NewHTTPFetcher(FetcherOpts{})
	}
	if opts.Parser == nil {
		opts.Parser = NewParser(opts.Log)
	}
	return &Pipeline{
		endpoint: opts.Endpoint,
		fetcher:  opts.Fetcher,
		parser:   opts.Parser,
		probe:    opts.Probe,
		log:      opts.Log,
	}
}

// Load runs one query. Failures are logged and reported through Result.Reason.
func (p *Pipeline) Load(ctx context.Context, spec QuerySpec) Result {
	if p.probe != nil {
		if err := p.probe(ctx, p.endpoint); err != nil {
			p.log.Error("no connectivity", "endpoint", p.endpoint, "err", err)
			return Result{Articles: []Article{}, Reason: ReasonNoNetwork, Err: err}
		}
	}

	reqURL, err := BuildURL(p.endpoint, spec)
	if err != nil {
		p.log.Error("building request url", "err", err)
		return Result{Articles: []Article{}, Reason: ReasonFetchFailed, Err: err}
	}
	p.log.Debug("fetching articles", "url", redactURL(reqURL))

	body, err := p.fetcher.Fetch(ctx, reqURL)
	if err != nil {
		p.log.Error("fetching articles", "err", err)
		return Result{Articles: []Article{}, Reason: ReasonFetchFailed, Err: err}
	}

	articles, skipped, err := p.parser.parse(body)
	if err != nil {
		var pe *ParseError
		if !errors.As(err, &pe) {
			err = &ParseError{Reason: "unexpected", Err: err}
		}
		p.log.Error("parsing articles", "err", err)
		return Result{Articles: []Article{}, Reason: ReasonParseFailed, Err: err}
	}

	p.log.Info("loaded articles", "count", len(articles), "skipped", len(skipped))
	return Result{Articles: articles, Reason: ReasonOK, Skipped: len(skipped)}
}
