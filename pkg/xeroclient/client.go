// xeroclient/client.go
package xeroclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/accountsync/xeroserver/internal/apperr"
	"github.com/accountsync/xeroserver/internal/auth"
)

// Client is a stateless façade around the Xero identity and accounting
// APIs. A valid token is attached to every call; tenant scoping is done
// per call via the Xero-Tenant-Id header.
type Client struct {
	accountingURL string
	identityURL   string
	authService   *auth.Service
	httpClient    *http.Client
	logger        *slog.Logger
}

// NewClient creates a new Xero API client
func NewClient(accountingURL, identityURL string, authService *auth.Service, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		accountingURL: accountingURL,
		identityURL:   identityURL,
		authService:   authService,
		httpClient:    &http.Client{Timeout: 30 * time.Second},
		logger:        logger,
	}
}

// xeroError is the error body shape Xero returns; fields vary by API
type xeroError struct {
	Type    string `json:"Type"`
	Message string `json:"Message"`
	Title   string `json:"Title"`
	Detail  string `json:"Detail"`
}

func (e *xeroError) text() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Detail != "":
		return e.Detail
	default:
		return e.Title
	}
}

// send makes an authenticated request and returns the raw response body.
// Failures from the remote system are tagged as remote errors; they are
// not retried at this layer.
func (c *Client) send(ctx context.Context, method, url, tenantID, contentType string, body []byte, header http.Header) (json.RawMessage, error) {
	token, err := c.authService.RequireValidToken(ctx)
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("%s %s", token.TokenType, token.AccessToken))
	req.Header.Set("Accept", "application/json")
	if tenantID != "" {
		req.Header.Set("Xero-Tenant-Id", tenantID)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Set(key, value)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Remotef(err, "request to Xero failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Remotef(err, "failed to read Xero response")
	}

	if resp.StatusCode >= 400 {
		var xe xeroError
		if err := json.Unmarshal(respBody, &xe); err == nil && xe.text() != "" {
			c.logger.Error("xero api error", "method", method, "url", url, "status", resp.StatusCode, "message", xe.text())
			return nil, apperr.Remotef(nil, "Xero API error: %s", xe.text())
		}
		c.logger.Error("xero api error", "method", method, "url", url, "status", resp.StatusCode)
		return nil, apperr.Remotef(nil, "Xero API returned status %d: %s", resp.StatusCode, respBody)
	}

	return respBody, nil
}

// get performs a GET against an accounting endpoint for a tenant
func (c *Client) get(ctx context.Context, tenantID, path string) (json.RawMessage, error) {
	return c.send(ctx, http.MethodGet, c.accountingURL+path, tenantID, "", nil, nil)
}
