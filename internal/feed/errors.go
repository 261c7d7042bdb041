package feed

import "fmt"

// FetchError reports a non-200 response or a transport failure.
// Exactly one of StatusCode and Err is set.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a response body that is not a valid search response.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing response: %s: %v", e.Reason, e.Err)
	}
	return "parsing response: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// ElementError describes a single result that was skipped.
type ElementError struct {
	Index int
	Field string
	Err   error
}

func (e *ElementError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("result %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("result %d: field %q: %v", e.Index, e.Field, e.Err)
}

func (e *ElementError) Unwrap() error { return e.Err }
