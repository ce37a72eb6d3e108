// Package apiclient is the single point of outbound dispatch to the
// marketplace REST API. It attaches bearer tokens, retries exactly once on
// 401 with a force-refreshed token, and maps failures onto a small error
// taxonomy the UI layer can branch on.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rubayet2027/KrishiLink-Client/internal/auth"
)

// Client dispatches requests against one API base URL. It holds no
// per-request state; every call fetches its token fresh at send time.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  auth.TokenProvider
}

// New creates a Client. baseURL includes the API prefix (e.g.
// "https://api.example.com/api"). The token provider is injected here so
// tests can substitute a fake; it is never looked up ambiently.
func New(baseURL string, tokens auth.TokenProvider, timeout time.Duration) *Client {
	if tokens == nil {
		tokens = auth.Anonymous{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// call describes one logical request. The retried flag lives here, per
// call value, so concurrent in-flight requests retry independently.
type call struct {
	method  string
	path    string
	query   url.Values
	body    any
	retried bool
}

// do sends a call and decodes the response into out (which may be nil).
// On 401 the call is resent exactly once with a freshly refreshed token;
// a second 401 is final and surfaces ErrAuthExpired.
func (c *Client) do(ctx context.Context, cl call, out any) error {
	for {
		status, body, err := c.send(ctx, &cl)
		if err != nil {
			return err
		}

		if status == http.StatusUnauthorized {
			if cl.retried {
				return fmt.Errorf("%w: still unauthorized after token refresh", ErrAuthExpired)
			}
			cl.retried = true
			continue
		}

		if status >= http.StatusBadRequest {
			return &HTTPError{Status: status, Body: body}
		}

		if err := unwrap(body, out); err != nil {
			return fmt.Errorf("failed to decode %s %s response: %w", cl.method, cl.path, err)
		}
		return nil
	}
}

// send performs a single attempt: fetch token, attach, dispatch, read.
// The token is force-refreshed on every attempt so it cannot be stale at
// send time.
func (c *Client) send(ctx context.Context, cl *call) (int, []byte, error) {
	reqURL := c.baseURL + cl.path
	if len(cl.query) > 0 {
		reqURL += "?" + cl.query.Encode()
	}

	var reqBody io.Reader
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, reqURL, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Token(ctx, true)
	if err != nil {
		if cl.retried {
			// Refresh failed on the retry path: the session is unrecoverable.
			return 0, nil, fmt.Errorf("%w: %v", ErrAuthExpired, err)
		}
		// Fail-open: proceed unauthenticated and let the server reject it.
		log.Printf("apiclient: token fetch failed, sending unauthenticated: %v", err)
		token = ""
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, &NetworkError{URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &NetworkError{URL: reqURL, Err: err}
	}

	return resp.StatusCode, body, nil
}
