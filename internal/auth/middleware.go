// auth/middleware.go
package auth

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/accountsync/xeroserver/internal/apperr"
)

// contextKey is a custom type for context keys
type contextKey string

// Context keys
const (
	TokenKey     contextKey = "token"
	TenantKey    contextKey = "tenant_id"
	RequestIDKey contextKey = "request_id"
)

// TokenFromContext extracts the token from the request context
func TokenFromContext(ctx context.Context) *Token {
	token, _ := ctx.Value(TokenKey).(*Token)
	return token
}

// TenantFromContext extracts the prefetched tenant ID from the context
func TenantFromContext(ctx context.Context) string {
	tenantID, _ := ctx.Value(TenantKey).(string)
	return tenantID
}

// RequireToken guards privileged routes: it refreshes an expired token
// and rejects the request with a login redirect hint when no usable
// token remains.
func RequireToken(service *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := service.RequireValidToken(r.Context())
			if err != nil {
				apperr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), TokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TenantPrefetch loads the stored tenant ID into the request context and
// logs it. It never rejects a request: handlers decide for themselves
// whether a missing tenant is an error.
func TenantPrefetch(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenantID := StoredTenantID(r)
			if tenantID != "" {
				logger.Debug("retrieved tenant ID from session", "tenant_id", tenantID)
			}

			ctx := context.WithValue(r.Context(), TenantKey, tenantID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// statusRecorder captures the response status for request logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger attaches a request ID and logs each request with its
// status and duration
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
			next.ServeHTTP(recorder, r.WithContext(ctx))

			logger.Info("request",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", recorder.status,
				"duration", time.Since(start),
			)
		})
	}
}
