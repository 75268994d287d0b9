// xeroclient/accounting.go
package xeroclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// GetConnections lists the principal's tenant connections from the
// identity service
func (c *Client) GetConnections(ctx context.Context) ([]Connection, error) {
	body, err := c.send(ctx, http.MethodGet, c.identityURL+"/connections", "", "", nil, nil)
	if err != nil {
		return nil, err
	}

	var connections []Connection
	if err := json.Unmarshal(body, &connections); err != nil {
		return nil, fmt.Errorf("failed to parse connections: %w", err)
	}
	return connections, nil
}

// GetOrganisations fetches organisation details for a tenant
func (c *Client) GetOrganisations(ctx context.Context, tenantID string) (*OrganisationsResponse, error) {
	body, err := c.get(ctx, tenantID, "/Organisations")
	if err != nil {
		return nil, err
	}

	var orgs OrganisationsResponse
	if err := json.Unmarshal(body, &orgs); err != nil {
		return nil, fmt.Errorf("failed to parse organisations: %w", err)
	}
	return &orgs, nil
}

// GetAccounts fetches accounts for a tenant, optionally restricted by a
// server-side where filter
func (c *Client) GetAccounts(ctx context.Context, tenantID, where string) (*AccountsResponse, error) {
	path := "/Accounts"
	if where != "" {
		path += "?where=" + url.QueryEscape(where)
	}

	body, err := c.get(ctx, tenantID, path)
	if err != nil {
		return nil, err
	}

	var accounts AccountsResponse
	if err := json.Unmarshal(body, &accounts); err != nil {
		return nil, fmt.Errorf("failed to parse accounts: %w", err)
	}
	return &accounts, nil
}

// GetInvoices lists invoices for a tenant; the remote payload is passed
// through as-is
func (c *Client) GetInvoices(ctx context.Context, tenantID string) (json.RawMessage, error) {
	return c.get(ctx, tenantID, "/Invoices")
}

// GetInvoice fetches a single invoice
func (c *Client) GetInvoice(ctx context.Context, tenantID, invoiceID string) (json.RawMessage, error) {
	return c.get(ctx, tenantID, "/Invoices/"+url.PathEscape(invoiceID))
}

// CreateInvoices submits a batch of invoices as a single create call.
// Partial-success semantics from Xero are passed through unmodified.
func (c *Client) CreateInvoices(ctx context.Context, tenantID string, payload interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal invoices: %w", err)
	}
	return c.send(ctx, http.MethodPut, c.accountingURL+"/Invoices", tenantID, "application/json", body, nil)
}

// CreateInvoiceAttachment uploads a file attachment to an invoice. The
// idempotency key lets Xero deduplicate retried uploads.
func (c *Client) CreateInvoiceAttachment(ctx context.Context, tenantID, invoiceID, filename, mimeType string, content []byte, idempotencyKey string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/Invoices/%s/Attachments/%s?IncludeOnline=true",
		c.accountingURL, url.PathEscape(invoiceID), url.PathEscape(filename))

	header := http.Header{}
	if idempotencyKey != "" {
		header.Set("Idempotency-Key", idempotencyKey)
	}

	return c.send(ctx, http.MethodPut, endpoint, tenantID, mimeType, content, header)
}

// GetContacts lists contacts for a tenant
func (c *Client) GetContacts(ctx context.Context, tenantID string) (json.RawMessage, error) {
	return c.get(ctx, tenantID, "/Contacts")
}

// GetContact fetches a single contact
func (c *Client) GetContact(ctx context.Context, tenantID, contactID string) (json.RawMessage, error) {
	return c.get(ctx, tenantID, "/Contacts/"+url.PathEscape(contactID))
}

// GetBankTransactions lists bank transactions for a tenant
func (c *Client) GetBankTransactions(ctx context.Context, tenantID string) (json.RawMessage, error) {
	return c.get(ctx, tenantID, "/BankTransactions")
}
