package feed

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"
)

// DefaultEndpoint is the Guardian content search endpoint.
const DefaultEndpoint = "https://content.guardianapis.com/search"

// BuildURL composes the request URL for spec against endpoint.
// The section parameter is omitted entirely when no section is enabled.
func BuildURL(endpoint string, spec QuerySpec) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("endpoint scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("endpoint %q has no host", endpoint)
	}

	q := u.Query()
	q.Del("section")
	if sections := spec.OrderedSections(); len(sections) > 0 {
		names := lo.Map(sections, func(s Section, _ int) string { return string(s) })
		q.Set("section", strings.Join(names, "|"))
	}
	q.Set("show-tags", "contributor")
	q.Set("api-key", spec.APIKey)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// redactURL hides the api key so request URLs can be logged and shown.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Has("api-key") {
		q.Set("api-key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
