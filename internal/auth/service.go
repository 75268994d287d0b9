// auth/service.go
package auth

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/accountsync/xeroserver/internal/apperr"
)

// expiryLeeway is the safety buffer against clock skew and request
// latency: a token within this window of its expiry counts as expired.
const expiryLeeway = 60 * time.Second

// Service manages the OAuth2 token lifecycle: acquisition, storage,
// expiry detection and refresh. The store is injected so token state can
// live in memory, Redis or both.
type Service struct {
	oauth  *oauth2.Config
	scope  string
	store  TokenStore
	logger *slog.Logger

	// mu serializes check-then-refresh so concurrent requests racing an
	// expired token perform a single refresh
	mu sync.Mutex

	now func() time.Time
}

// NewService creates a new auth service
func NewService(cfg OAuthConfig, store TokenStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       strings.Fields(cfg.Scope),
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		scope:  cfg.Scope,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// AuthCodeURL generates the Xero authorization URL for the login redirect
func (s *Service) AuthCodeURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

// Exchange trades an authorization code for a token and persists it
func (s *Service) Exchange(ctx context.Context, code string) (*Token, error) {
	tok, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	token := s.fromOAuth2(tok, nil)
	if err := s.store.Save(ctx, token); err != nil {
		return nil, err
	}

	s.logger.Info("stored token from authorization code exchange", "expires_at", token.Expiry())
	return token, nil
}

// ObtainToken returns the current token, injecting the expected
// capability scope if missing. Returns nil when no token is stored.
func (s *Service) ObtainToken(ctx context.Context) *Token {
	token, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load token", "error", err)
		return nil
	}
	if token == nil {
		return nil
	}

	if token.Scope == "" {
		token.Scope = s.scope
	}
	if token.ExpiresAt != 0 {
		s.logger.Debug("obtained token", "expires_at", token.Expiry())
	}

	return token
}

// IsExpired reports whether the token is absent, lacks an expiry, or is
// within the leeway window of expiring.
func (s *Service) IsExpired(token *Token) bool {
	if token == nil || token.ExpiresAt == 0 {
		return true
	}
	return s.now().Unix() >= token.ExpiresAt-int64(expiryLeeway.Seconds())
}

// RefreshIfExpired returns the current token, refreshing it against the
// authorization server first when it is expired. On refresh failure the
// stored token is cleared and nil is returned, so downstream code treats
// the caller as unauthenticated.
func (s *Service) RefreshIfExpired(ctx context.Context) *Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := s.ObtainToken(ctx)
	if token == nil {
		return nil
	}
	if !s.IsExpired(token) {
		return token
	}

	newToken, err := s.refresh(ctx, token)
	if err != nil {
		s.logger.Error("failed to refresh token, clearing stored token", "error", err)
		if delErr := s.store.Delete(ctx); delErr != nil {
			s.logger.Error("failed to clear token", "error", delErr)
		}
		return nil
	}

	s.logger.Info("refreshed token", "expires_at", newToken.Expiry())
	return newToken
}

// refresh exchanges the refresh token for a new access/refresh pair and
// persists it
func (s *Service) refresh(ctx context.Context, token *Token) (*Token, error) {
	src := s.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: token.RefreshToken})
	tok, err := src.Token()
	if err != nil {
		return nil, err
	}

	newToken := s.fromOAuth2(tok, token)
	if err := s.store.Save(ctx, newToken); err != nil {
		return nil, err
	}

	return newToken, nil
}

// RequireValidToken is the guard in front of every privileged route. It
// refreshes an expired token and signals an authentication-required
// failure when no usable token remains.
func (s *Service) RequireValidToken(ctx context.Context) (*Token, error) {
	token := s.RefreshIfExpired(ctx)
	if token == nil {
		return nil, apperr.New(apperr.AuthRequired, "Authentication required")
	}
	return token, nil
}

// Logout clears the stored token
func (s *Service) Logout(ctx context.Context) error {
	return s.store.Delete(ctx)
}

// fromOAuth2 converts an oauth2 token, preserving the previous refresh
// token when the server omits one from the response
func (s *Service) fromOAuth2(tok *oauth2.Token, prev *Token) *Token {
	token := &Token{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		RefreshToken: tok.RefreshToken,
		Scope:        s.scope,
	}

	if token.TokenType == "" {
		token.TokenType = "Bearer"
	}
	if !tok.Expiry.IsZero() {
		token.ExpiresAt = tok.Expiry.Unix()
		token.ExpiresIn = token.ExpiresAt - s.now().Unix()
	}
	if scope, ok := tok.Extra("scope").(string); ok && scope != "" {
		token.Scope = scope
	}
	if token.RefreshToken == "" && prev != nil {
		token.RefreshToken = prev.RefreshToken
	}

	return token
}
