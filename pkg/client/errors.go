package client

import "fmt"

// AuthError indicates the server rejected the bearer token (401/403).
// It is surfaced separately from HTTPError so the CLI can tell the
// user their token is the likely culprit.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed (status %d): your API token is likely wrong or missing", e.Status)
}

// HTTPError is any other non-2xx response from the repository.
type HTTPError struct {
	Status int
	URL    string
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request to %s failed with status %d: %s", e.URL, e.Status, e.Body)
}

// ProtocolError means the response could not be decoded as the
// expected JSON shape. The raw response text is kept to aid debugging
// when the server answers with an HTML error page.
type ProtocolError struct {
	URL    string
	Status int
	Body   string
	Err    error
}

func (e *ProtocolError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("invalid response from %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("failed to parse response from %s (status %d): %q", e.URL, e.Status, e.Body)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}
