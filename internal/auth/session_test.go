// auth/session_test.go
package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrip carries the session cookie from a response into a new request
func roundTrip(t *testing.T, rr *httptest.ResponseRecorder, method, target string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for _, cookie := range rr.Result().Cookies() {
		req.AddCookie(cookie)
	}
	return req
}

func TestTenantIDSessionRoundTrip(t *testing.T) {
	InitSessionStore([]byte("test-secret"), "session")

	req := httptest.NewRequest(http.MethodPost, "/select-tenant/t1", nil)
	assert.Empty(t, StoredTenantID(req), "fresh session has no tenant")

	rr := httptest.NewRecorder()
	require.NoError(t, StoreTenantID(rr, req, "tenant-123"))

	next := roundTrip(t, rr, http.MethodGet, "/selected-tenant")
	assert.Equal(t, "tenant-123", StoredTenantID(next))
}

func TestClearTenantID(t *testing.T) {
	InitSessionStore([]byte("test-secret"), "session")

	req := httptest.NewRequest(http.MethodPost, "/select-tenant/t1", nil)
	rr := httptest.NewRecorder()
	require.NoError(t, StoreTenantID(rr, req, "tenant-123"))

	withTenant := roundTrip(t, rr, http.MethodGet, "/selected-tenant")
	rr2 := httptest.NewRecorder()
	require.NoError(t, ClearTenantID(rr2, withTenant))

	cleared := roundTrip(t, rr2, http.MethodGet, "/selected-tenant")
	assert.Empty(t, StoredTenantID(cleared))
}

func TestAccountIDSessionRoundTrip(t *testing.T) {
	InitSessionStore([]byte("test-secret"), "session")

	req := httptest.NewRequest(http.MethodPost, "/select-account/a1", nil)
	assert.Empty(t, StoredAccountID(req))

	rr := httptest.NewRecorder()
	require.NoError(t, StoreAccountID(rr, req, "account-xyz"))

	next := roundTrip(t, rr, http.MethodGet, "/selected-account")
	assert.Equal(t, "account-xyz", StoredAccountID(next))
}

func TestTenantAndAccountSelectionsAreIndependent(t *testing.T) {
	InitSessionStore([]byte("test-secret"), "session")

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rr := httptest.NewRecorder()
	require.NoError(t, StoreTenantID(rr, req, "tenant-1"))

	withTenant := roundTrip(t, rr, http.MethodPost, "/")
	rr2 := httptest.NewRecorder()
	require.NoError(t, StoreAccountID(rr2, withTenant, "account-1"))

	both := roundTrip(t, rr2, http.MethodGet, "/")
	assert.Equal(t, "tenant-1", StoredTenantID(both))
	assert.Equal(t, "account-1", StoredAccountID(both))

	// Clearing the account leaves the tenant selection intact
	rr3 := httptest.NewRecorder()
	require.NoError(t, ClearAccountID(rr3, both))
	after := roundTrip(t, rr3, http.MethodGet, "/")
	assert.Equal(t, "tenant-1", StoredTenantID(after))
	assert.Empty(t, StoredAccountID(after))
}
