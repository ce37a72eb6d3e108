package auth

import (
	"context"
	"fmt"
	"log"
	"time"
)

// TokenProvider supplies the current identity token for an outbound API
// request. An empty token with a nil error means no principal is signed in;
// the request then proceeds unauthenticated and the server decides.
type TokenProvider interface {
	// Token returns the identity token for the request's principal.
	// When forceRefresh is true any cached token is bypassed and a newly
	// signed one is obtained from the identity provider.
	Token(ctx context.Context, forceRefresh bool) (string, error)
}

// Anonymous is a TokenProvider with no principal behind it.
type Anonymous struct{}

func (Anonymous) Token(ctx context.Context, forceRefresh bool) (string, error) {
	return "", nil
}

// tokenSlack is subtracted from the cached token expiry so a token about to
// lapse in transit is not reused.
const tokenSlack = 30 * time.Second

// SessionTokens resolves tokens from the session attached to the request
// context by the session middleware. It is the production TokenProvider:
// one instance serves all requests, each request carrying its own session.
type SessionTokens struct {
	Identity IIdentityClient
	Sessions ISessionStore
}

// NewSessionTokens creates a session-backed TokenProvider.
func NewSessionTokens(identity IIdentityClient, sessions ISessionStore) *SessionTokens {
	return &SessionTokens{Identity: identity, Sessions: sessions}
}

// Token redeems the session's refresh token at the identity provider.
// With forceRefresh the provider is always consulted; otherwise a cached
// access token is reused while it has comfortably not expired.
func (p *SessionTokens) Token(ctx context.Context, forceRefresh bool) (string, error) {
	sess := SessionFromContext(ctx)
	if sess == nil {
		return "", nil
	}

	if !forceRefresh && sess.AccessToken != "" && time.Until(sess.TokenExpiry) > tokenSlack {
		return sess.AccessToken, nil
	}

	tok, err := p.Identity.Refresh(ctx, sess.RefreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to refresh identity token: %w", err)
	}

	sess.AccessToken = tok.AccessToken
	sess.TokenExpiry = tok.Expiry

	// Write the refreshed token back so later requests on this session reuse
	// it instead of redeeming the refresh token again. The token itself is
	// already in hand, so a store failure only costs that reuse.
	if p.Sessions != nil {
		if err := p.Sessions.Save(ctx, sess); err != nil {
			log.Printf("Failed to persist refreshed token for session %s: %v", sess.ID, err)
		}
	}
	return tok.AccessToken, nil
}

type contextKey string

const sessionContextKey contextKey = "session"

// WithSession attaches the principal's session to a request context.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

// SessionFromContext returns the session attached by the middleware, or nil
// for anonymous requests.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionContextKey).(*Session)
	return s
}
