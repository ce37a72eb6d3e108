package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrAuthExpired signals that the session can no longer be authenticated:
// either the token refresh failed during the 401 retry, or the server
// rejected the freshly refreshed token as well. Callers must react by
// forcing re-authentication; the client never navigates anywhere itself.
var ErrAuthExpired = errors.New("authentication expired")

// NetworkError means no response was received at all.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("no response from %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a response with status >= 400, surfaced after the single
// 401 retry has been exhausted. Body is kept verbatim for the UI layer.
type HTTPError struct {
	Status int
	Body   []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("api responded %d: %s", e.Status, string(e.Body))
}

// Message extracts the server's human-readable message, if the body carries
// one, falling back to the generic status text.
func (e *HTTPError) Message() string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(e.Body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return http.StatusText(e.Status)
}

// IsNotFound reports whether err is an HTTPError with status 404.
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound
}
