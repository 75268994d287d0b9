// account/handlers_test.go
package account

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accountsync/xeroserver/internal/auth"
	"github.com/accountsync/xeroserver/pkg/xeroclient"
)

// newFakeAccountsServer serves /Accounts, recognizing only the account
// ID "xyz" under any filter
func newFakeAccountsServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/Accounts", func(w http.ResponseWriter, r *http.Request) {
		where := r.URL.Query().Get("where")
		w.Header().Set("Content-Type", "application/json")

		accounts := []map[string]string{}
		if where == "" || strings.Contains(where, `AccountID=guid("xyz")`) || !strings.Contains(where, "AccountID") {
			accounts = append(accounts, map[string]string{
				"AccountID": "xyz",
				"Code":      "090",
				"Name":      "Business Account",
				"Status":    "ACTIVE",
				"Type":      "BANK",
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"Accounts": accounts})
	})
	return httptest.NewServer(mux)
}

func newTestHandler(t *testing.T, upstream *httptest.Server) *Handler {
	t.Helper()
	auth.InitSessionStore([]byte("test-secret"), "session")

	store := auth.NewMemoryTokenStore()
	require.NoError(t, store.Save(context.Background(), &auth.Token{
		AccessToken: "access",
		TokenType:   "Bearer",
		ExpiresAt:   time.Now().Add(time.Hour).Unix(),
	}))
	authSvc := auth.NewService(auth.OAuthConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		TokenURL:     "http://localhost/token",
	}, store, nil)

	client := xeroclient.NewClient(upstream.URL, upstream.URL, authSvc, nil)
	return NewHandler(NewService(client, nil), nil)
}

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/accounts", h.ListAccounts).Methods("GET")
	r.HandleFunc("/selected-account", h.SelectedAccount).Methods("GET")
	r.HandleFunc("/select-account/{account_id}", h.SelectAccount).Methods("POST")
	return r
}

// tenantCookies builds session cookies with a tenant selection stored
func tenantCookies(t *testing.T, tenantID string) []*http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rr := httptest.NewRecorder()
	require.NoError(t, auth.StoreTenantID(rr, req, tenantID))
	return rr.Result().Cookies()
}

func TestSelectAccount_NoTenantSelected(t *testing.T) {
	ts := newFakeAccountsServer(t)
	defer ts.Close()
	router := newRouter(newTestHandler(t, ts))

	req := httptest.NewRequest(http.MethodPost, "/select-account/xyz", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "No tenant selected. Please select a tenant first.", body["detail"])
}

func TestSelectAccount_InvalidAccountID(t *testing.T) {
	ts := newFakeAccountsServer(t)
	defer ts.Close()
	router := newRouter(newTestHandler(t, ts))

	req := httptest.NewRequest(http.MethodPost, "/select-account/bogus", nil)
	for _, c := range tenantCookies(t, "tenant-1") {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Invalid account ID or account not found in selected organization", body["detail"])
}

func TestSelectAccount_Success(t *testing.T) {
	ts := newFakeAccountsServer(t)
	defer ts.Close()
	router := newRouter(newTestHandler(t, ts))

	req := httptest.NewRequest(http.MethodPost, "/select-account/xyz", nil)
	for _, c := range tenantCookies(t, "tenant-1") {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "xyz", body["account_id"])
	assert.NotNil(t, body["account_details"])
}

func TestListAccounts_NoTenant(t *testing.T) {
	ts := newFakeAccountsServer(t)
	defer ts.Close()
	router := newRouter(newTestHandler(t, ts))

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListAccounts_ReturnsBankAccounts(t *testing.T) {
	ts := newFakeAccountsServer(t)
	defer ts.Close()
	router := newRouter(newTestHandler(t, ts))

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	for _, c := range tenantCookies(t, "tenant-1") {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var body xeroclient.AccountsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Accounts, 1)
	assert.Equal(t, "BANK", body.Accounts[0].Type)
}

func TestSelectedAccount_States(t *testing.T) {
	ts := newFakeAccountsServer(t)
	defer ts.Close()
	router := newRouter(newTestHandler(t, ts))

	// No tenant selected
	req := httptest.NewRequest(http.MethodGet, "/selected-account", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "no_tenant", body["status"])

	// Tenant selected but no account
	req = httptest.NewRequest(http.MethodGet, "/selected-account", nil)
	for _, c := range tenantCookies(t, "tenant-1") {
		req.AddCookie(c)
	}
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "no_account", body["status"])
}

func TestSelectedAccount_InvalidAccountCleared(t *testing.T) {
	ts := newFakeAccountsServer(t)
	defer ts.Close()
	router := newRouter(newTestHandler(t, ts))

	seed := httptest.NewRequest(http.MethodPost, "/", nil)
	rr := httptest.NewRecorder()
	require.NoError(t, auth.StoreTenantID(rr, seed, "tenant-1"))
	seed2 := httptest.NewRequest(http.MethodPost, "/", nil)
	for _, c := range rr.Result().Cookies() {
		seed2.AddCookie(c)
	}
	rr2 := httptest.NewRecorder()
	require.NoError(t, auth.StoreAccountID(rr2, seed2, "gone"))

	req := httptest.NewRequest(http.MethodGet, "/selected-account", nil)
	for _, c := range rr2.Result().Cookies() {
		req.AddCookie(c)
	}
	rr3 := httptest.NewRecorder()
	router.ServeHTTP(rr3, req)

	assert.Equal(t, http.StatusOK, rr3.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr3.Body.Bytes(), &body))
	assert.Equal(t, "invalid_account", body["status"])

	// The stale selection is cleared from the session
	next := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rr3.Result().Cookies() {
		next.AddCookie(c)
	}
	assert.Empty(t, auth.StoredAccountID(next))
}

func TestSelectedAccount_Active(t *testing.T) {
	ts := newFakeAccountsServer(t)
	defer ts.Close()
	h := newTestHandler(t, ts)
	router := newRouter(h)

	// Store both selections
	seed := httptest.NewRequest(http.MethodPost, "/", nil)
	rr := httptest.NewRecorder()
	require.NoError(t, auth.StoreTenantID(rr, seed, "tenant-1"))
	seed2 := httptest.NewRequest(http.MethodPost, "/", nil)
	for _, c := range rr.Result().Cookies() {
		seed2.AddCookie(c)
	}
	rr2 := httptest.NewRecorder()
	require.NoError(t, auth.StoreAccountID(rr2, seed2, "xyz"))

	req := httptest.NewRequest(http.MethodGet, "/selected-account", nil)
	for _, c := range rr2.Result().Cookies() {
		req.AddCookie(c)
	}
	rr3 := httptest.NewRecorder()
	router.ServeHTTP(rr3, req)

	assert.Equal(t, http.StatusOK, rr3.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr3.Body.Bytes(), &body))
	assert.Equal(t, "active", body["status"])
	assert.Equal(t, "xyz", body["account_id"])
}

func TestEscapeFilterValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain-id", "plain-id"},
		{`with"quote`, `with\"quote`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeFilterValue(tt.in), fmt.Sprintf("input %q", tt.in))
	}
}
