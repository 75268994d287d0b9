// auth/handlers.go
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"net/http"
	"time"

	"github.com/accountsync/xeroserver/internal/apperr"
)

// Handler provides HTTP handlers for the OAuth flow
type Handler struct {
	service     *Service
	frontendURL string
	logger      *slog.Logger
}

// NewHandler creates a new auth handler
func NewHandler(service *Service, frontendURL string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		service:     service,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// generateState creates a secure random state for OAuth
func (h *Handler) generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// Index redirects an authenticated browser to the frontend dashboard and
// everyone else to the login entry point
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	if h.service.ObtainToken(r.Context()) == nil {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	http.Redirect(w, r, h.frontendURL, http.StatusFound)
}

// Login initiates the Xero authorization flow
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	state, err := h.generateState()
	if err != nil {
		apperr.WriteError(w, apperr.Remotef(err, "Failed to generate state"))
		return
	}

	// Save state in session for callback verification
	session := GetSession(r)
	session.Values["oauth_state"] = state
	session.Values["oauth_state_expiry"] = time.Now().Add(10 * time.Minute).Unix()
	if err := session.Save(r, w); err != nil {
		apperr.WriteError(w, apperr.Remotef(err, "Failed to save session"))
		return
	}

	http.Redirect(w, r, h.service.AuthCodeURL(state), http.StatusFound)
}

// Callback handles the OAuth callback from Xero and exchanges the
// authorization code for a token
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	code := query.Get("code")
	state := query.Get("state")

	if code == "" || state == "" {
		apperr.WriteError(w, apperr.Validationf("Invalid callback parameters"))
		return
	}

	// Verify state parameter
	session := GetSession(r)
	savedState, ok := session.Values["oauth_state"].(string)
	if !ok || savedState != state {
		apperr.WriteError(w, apperr.Validationf("Invalid state parameter"))
		return
	}
	expiry, ok := session.Values["oauth_state_expiry"].(int64)
	if !ok || time.Now().Unix() > expiry {
		apperr.WriteError(w, apperr.Validationf("State parameter expired"))
		return
	}

	delete(session.Values, "oauth_state")
	delete(session.Values, "oauth_state_expiry")
	if err := session.Save(r, w); err != nil {
		apperr.WriteError(w, apperr.Remotef(err, "Failed to save session"))
		return
	}

	if _, err := h.service.Exchange(r.Context(), code); err != nil {
		h.logger.Error("oauth callback error", "error", err)
		apperr.WriteError(w, apperr.Validationf("%v", err))
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout clears the stored token and sends the browser back to login
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context()); err != nil {
		h.logger.Error("failed to clear token on logout", "error", err)
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}
