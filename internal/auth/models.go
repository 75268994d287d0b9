// auth/models.go
package auth

import (
	"context"
	"time"
)

// Token represents OAuth2 token data from Xero
type Token struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"` // epoch seconds
	Scope        string `json:"scope"`      // space-delimited capability list
}

// Expiry returns the token expiry as a time.Time. Zero when the token
// carries no expiry.
func (t *Token) Expiry() time.Time {
	if t == nil || t.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.Unix(t.ExpiresAt, 0)
}

// TokenStore is the pluggable backing store for the process's single
// Xero token. Load returns (nil, nil) when no token is stored.
type TokenStore interface {
	Load(ctx context.Context) (*Token, error)
	Save(ctx context.Context, token *Token) error
	Delete(ctx context.Context) error
}

// OAuthConfig holds OAuth 2.0 configuration for the Xero identity service
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scope        string // space-delimited
	AuthURL      string
	TokenURL     string
}
