// auth/session.go
package auth

import (
	"net/http"

	"github.com/gorilla/sessions"
)

// Session keys for the current tenant and bank account selection
const (
	tenantIDKey  = "xero_tenant_id"
	accountIDKey = "xero_bank_account_id"
)

var (
	store       *sessions.CookieStore
	sessionName = "session"
)

// InitSessionStore initializes the cookie session store
func InitSessionStore(secret []byte, name string) {
	store = sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30, // 30 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if name != "" {
		sessionName = name
	}
}

// GetSession retrieves the request's session, creating one on first use
func GetSession(r *http.Request) *sessions.Session {
	session, _ := store.Get(r, sessionName)
	return session
}

// StoredTenantID returns the tenant ID stored in the session, or ""
func StoredTenantID(r *http.Request) string {
	session := GetSession(r)
	tenantID, _ := session.Values[tenantIDKey].(string)
	return tenantID
}

// StoreTenantID stores the tenant ID in the session
func StoreTenantID(w http.ResponseWriter, r *http.Request, tenantID string) error {
	session := GetSession(r)
	session.Values[tenantIDKey] = tenantID
	return session.Save(r, w)
}

// ClearTenantID removes a stored tenant ID that is no longer valid
func ClearTenantID(w http.ResponseWriter, r *http.Request) error {
	session := GetSession(r)
	delete(session.Values, tenantIDKey)
	return session.Save(r, w)
}

// StoredAccountID returns the bank account ID stored in the session, or ""
func StoredAccountID(r *http.Request) string {
	session := GetSession(r)
	accountID, _ := session.Values[accountIDKey].(string)
	return accountID
}

// StoreAccountID stores the bank account ID in the session
func StoreAccountID(w http.ResponseWriter, r *http.Request, accountID string) error {
	session := GetSession(r)
	session.Values[accountIDKey] = accountID
	return session.Save(r, w)
}

// ClearAccountID removes a stored account ID that is no longer valid
func ClearAccountID(w http.ResponseWriter, r *http.Request) error {
	session := GetSession(r)
	delete(session.Values, accountIDKey)
	return session.Save(r, w)
}
