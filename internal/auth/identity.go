package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/rubayet2027/KrishiLink-Client/internal/config"
)

// IIdentityClient talks to the external identity provider.
type IIdentityClient interface {
	// SignUp creates a new account at the identity provider and returns
	// the same token set a sign-in would.
	SignUp(ctx context.Context, email, password, name string) (*oauth2.Token, error)
	// PasswordLogin exchanges sign-in credentials for a token set.
	PasswordLogin(ctx context.Context, email, password string) (*oauth2.Token, error)
	// Refresh redeems a refresh token for a newly signed access token.
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// identityClient implements IIdentityClient over oauth2, plus the
// provider's sign-up endpoint which sits outside the oauth2 grants.
type identityClient struct {
	conf      *oauth2.Config
	signUpURL string
	http      *http.Client
}

// NewIdentityClient creates an identity provider client from config.
func NewIdentityClient(cfg *config.Config) IIdentityClient {
	return &identityClient{
		conf: &oauth2.Config{
			ClientID:     cfg.IdpClientID,
			ClientSecret: cfg.IdpClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL: cfg.IdpTokenURL,
			},
		},
		signUpURL: cfg.IdpSignUpURL,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

// signUpResponse is the token set the provider's sign-up endpoint returns.
type signUpResponse struct {
	AccessToken  string `json:"access_token"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// SignUp registers the account and returns its first token set, shaped
// like a PasswordLogin result so the session bootstrap is shared.
func (c *identityClient) SignUp(ctx context.Context, email, password, name string) (*oauth2.Token, error) {
	payload, err := json.Marshal(map[string]string{
		"email":       email,
		"password":    password,
		"displayName": name,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode sign-up request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.signUpURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build sign-up request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider sign-up failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read sign-up response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("identity provider rejected sign-up (%d): %s", resp.StatusCode, string(body))
	}

	var out signUpResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode sign-up response: %w", err)
	}

	accessToken := out.AccessToken
	if accessToken == "" {
		accessToken = out.IDToken
	}
	tok := &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: out.RefreshToken,
		Expiry:       time.Now().Add(time.Duration(out.ExpiresIn) * time.Second),
	}
	return tok.WithExtra(map[string]interface{}{"id_token": out.IDToken}), nil
}

// PasswordLogin performs the resource-owner credentials grant.
func (c *identityClient) PasswordLogin(ctx context.Context, email, password string) (*oauth2.Token, error) {
	tok, err := c.conf.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("identity provider sign-in failed: %w", err)
	}
	return tok, nil
}

// Refresh obtains a freshly signed access token. The seed token carries only
// the refresh token, so the token source always round-trips to the provider.
func (c *identityClient) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("no refresh token held for session")
	}
	src := c.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}
	return tok, nil
}

// Principal identifies the signed-in user as asserted by the identity
// provider's ID token.
type Principal struct {
	Email string
	Name  string
	Photo string
}

// idTokenClaims are the OIDC claims we read from the ID token.
type idTokenClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

// PrincipalFromToken extracts the principal from the ID token accompanying a
// token set. The claims are parsed without signature verification: the
// marketplace API is the authority on token validity, this identity only
// personalizes the UI and drives the ownership affordance.
func PrincipalFromToken(tok *oauth2.Token) (*Principal, error) {
	raw, _ := tok.Extra("id_token").(string)
	if raw == "" {
		return nil, fmt.Errorf("identity provider response carried no id_token")
	}

	claims := &idTokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("failed to parse id_token: %w", err)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("id_token carries no email claim")
	}

	return &Principal{
		Email: claims.Email,
		Name:  claims.Name,
		Photo: claims.Picture,
	}, nil
}
