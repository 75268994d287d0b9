// routes/routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/accountsync/xeroserver/infrastructure"
	"github.com/accountsync/xeroserver/internal/apperr"
	"github.com/accountsync/xeroserver/internal/auth"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *mux.Router, c *infrastructure.Container) {
	router.Use(auth.RequestLogger(c.Logger))

	// Public routes
	RegisterAuthRoutes(router, c.AuthHandler)
	router.HandleFunc("/healthz", healthHandler(c)).Methods("GET")

	// Everything else requires a valid token; the tenant prefetch runs
	// before each handler but leaves missing-tenant decisions to them
	protected := router.NewRoute().Subrouter()
	protected.Use(auth.RequireToken(c.AuthService))
	protected.Use(auth.TenantPrefetch(c.Logger))

	// Tenant selection
	protected.HandleFunc("/tenants", c.TenantHandler.ListTenants).Methods("GET")
	protected.HandleFunc("/select-tenant/{tenant_id}", c.TenantHandler.SelectTenant).Methods("POST")
	protected.HandleFunc("/selected-tenant", c.TenantHandler.SelectedTenant).Methods("GET")

	// Bank accounts
	protected.HandleFunc("/accounts", c.AccountHandler.ListAccounts).Methods("GET")
	protected.HandleFunc("/selected-account", c.AccountHandler.SelectedAccount).Methods("GET")
	protected.HandleFunc("/select-account/{account_id}", c.AccountHandler.SelectAccount).Methods("POST")

	// Invoices
	protected.HandleFunc("/invoices", c.InvoiceHandler.ListInvoices).Methods("GET")
	protected.HandleFunc("/invoices/{invoice_id}", c.InvoiceHandler.GetInvoice).Methods("GET")
	protected.HandleFunc("/create-invoices", c.InvoiceHandler.CreateInvoices).Methods("PUT")
	protected.HandleFunc("/invoice-attachment/{invoice_id}", c.InvoiceHandler.CreateAttachment).Methods("PUT")

	// Contacts
	protected.HandleFunc("/contacts", c.ContactHandler.ListContacts).Methods("GET")
	protected.HandleFunc("/contacts/{contact_id}", c.ContactHandler.GetContact).Methods("GET")

	// Bank transactions
	protected.HandleFunc("/bank-transactions", c.BankTransactionHandler.ListBankTransactions).Methods("GET")
}

// healthHandler reports process liveness plus redis health when a redis
// token store is configured
func healthHandler(c *infrastructure.Container) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]interface{}{"status": "ok"}
		if c.RedisHealth != nil {
			body["redis"] = c.RedisHealth.IsHealthy()
		}
		apperr.WriteJSON(w, http.StatusOK, body)
	}
}
