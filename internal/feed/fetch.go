package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultConnectTimeout = 15 * time.Second
	DefaultReadTimeout    = 10 * time.Second
)

// Fetcher retrieves a raw response body.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// FetcherOpts configures an HTTPFetcher. Zero values select the defaults.
type FetcherOpts struct {
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	// RateLimit caps requests per second; 0 disables pacing.
	RateLimit float64
	UserAgent string
}

// HTTPFetcher performs a single GET per call. It never retries.
type HTTPFetcher struct {
	client      *http.Client
	readTimeout time.Duration
	limiter     *rate.Limiter
	userAgent   string
}

func NewHTTPFetcher(opts FetcherOpts) *HTTPFetcher {
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = DefaultConnectTimeout
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = DefaultReadTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "newsapp"
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{Timeout: opts.ConnectTimeout}).DialContext
	transport.TLSHandshakeTimeout = opts.ConnectTimeout
	transport.ResponseHeaderTimeout = opts.ReadTimeout

	f := &HTTPFetcher{
		client:      &http.Client{Transport: transport},
		readTimeout: opts.ReadTimeout,
		userAgent:   opts.UserAgent,
	}
	if opts.RateLimit > 0 {
		f.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}
	return f
}

// Fetch returns the full body of a 200 response. Any other outcome is a *FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	shown := redactURL(rawURL)

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, &FetchError{URL: shown, Err: err}
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{URL: shown, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: shown, Err: f.cause(err, shown, nil)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: shown, StatusCode: resp.StatusCode}
	}

	// The body read is aborted when no bytes arrive for readTimeout.
	var timedOut atomic.Bool
	timer := time.AfterFunc(f.readTimeout, func() {
		timedOut.Store(true)
		cancel()
	})
	defer timer.Stop()

	body, err := io.ReadAll(&idleReader{r: resp.Body, timer: timer, d: f.readTimeout})
	if err != nil {
		return nil, &FetchError{URL: shown, Err: f.cause(err, shown, &timedOut)}
	}
	return body, nil
}

func (f *HTTPFetcher) cause(err error, shown string, timedOut *atomic.Bool) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		ue.URL = shown
	}
	if timedOut != nil && timedOut.Load() {
		return fmt.Errorf("read timeout after %s: %w", f.readTimeout, err)
	}
	return err
}

type idleReader struct {
	r     io.Reader
	timer *time.Timer
	d     time.Duration
}

func (r *idleReader) Read(p []byte) (int, error) {
	r.timer.Reset(r.d)
	return r.r.Read(p)
}
