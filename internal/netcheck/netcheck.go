// Package netcheck decides whether the news endpoint is reachable before a load.
package netcheck

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const (
	DefaultTimeout = 3 * time.Second
	// DefaultFresh is how long a successful probe is trusted.
	DefaultFresh = 30 * time.Second
)

// ConnectivityError means no network path to the endpoint host is available.
type ConnectivityError struct {
	Host string
	Err  error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("no connection to %s: %v", e.Host, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

type ProberOpts struct {
	Timeout time.Duration
	// Fresh skips the dial when the same address answered within this window.
	// Zero dials on every probe.
	Fresh time.Duration
	// Proxy picks the proxy for a request, as http.Transport.Proxy does.
	// Nil means http.ProxyFromEnvironment.
	Proxy func(*http.Request) (*url.URL, error)
}

// Prober dials the first hop a request to the endpoint would use: the proxy
// when one applies, otherwise the endpoint host.
type Prober struct {
	timeout time.Duration
	fresh   time.Duration
	proxy   func(*http.Request) (*url.URL, error)

	mu   sync.Mutex
	okAt map[string]time.Time
}

func NewProber(opts ProberOpts) *Prober {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Proxy == nil {
		opts.Proxy = http.ProxyFromEnvironment
	}
	return &Prober{
		timeout: opts.Timeout,
		fresh:   opts.Fresh,
		proxy:   opts.Proxy,
		okAt:    make(map[string]time.Time),
	}
}

// Probe opens and closes a TCP connection to the first hop for endpoint.
func (p *Prober) Probe(ctx context.Context, endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return &ConnectivityError{Host: endpoint, Err: err}
	}
	if u.Hostname() == "" {
		return &ConnectivityError{Host: endpoint, Err: fmt.Errorf("endpoint has no host")}
	}

	addr, err := p.target(u)
	if err != nil {
		return &ConnectivityError{Host: u.Host, Err: err}
	}
	if p.recentlyOK(addr) {
		return nil
	}

	d := net.Dialer{Timeout: p.timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		p.forget(addr)
		return &ConnectivityError{Host: addr, Err: err}
	}
	p.remember(addr)
	return conn.Close()
}

func (p *Prober) target(u *url.URL) (string, error) {
	proxyURL, err := p.proxy(&http.Request{Method: http.MethodGet, URL: u, Header: http.Header{}})
	if err != nil {
		return "", fmt.Errorf("resolving proxy: %w", err)
	}
	if proxyURL != nil && proxyURL.Hostname() != "" {
		return hostPort(proxyURL), nil
	}
	return hostPort(u), nil
}

func (p *Prober) recentlyOK(addr string) bool {
	if p.fresh <= 0 {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	at, ok := p.okAt[addr]
	return ok && time.Since(at) < p.fresh
}

func (p *Prober) remember(addr string) {
	if p.fresh <= 0 {
		return
	}
	p.mu.Lock()
	p.okAt[addr] = time.Now()
	p.mu.Unlock()
}

func (p *Prober) forget(addr string) {
	p.mu.Lock()
	delete(p.okAt, addr)
	p.mu.Unlock()
}

func hostPort(u *url.URL) string {
	if u.Port() != "" {
		return u.Host
	}
	port := "443"
	switch u.Scheme {
	case "http":
		port = "80"
	case "socks5", "socks5h":
		port = "1080"
	}
	return net.JoinHostPort(u.Hostname(), port)
}
