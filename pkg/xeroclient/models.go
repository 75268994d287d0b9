// xeroclient/models.go
package xeroclient

// Connection is a link between the authenticated principal and a tenant,
// as returned by the Xero identity service.
type Connection struct {
	ID             string `json:"id"`
	TenantID       string `json:"tenantId"`
	TenantType     string `json:"tenantType"`
	TenantName     string `json:"tenantName"`
	CreatedDateUTC string `json:"createdDateUtc"`
	UpdatedDateUTC string `json:"updatedDateUtc"`
}

// Organisation holds organisation details for a tenant
type Organisation struct {
	OrganisationID   string `json:"OrganisationID"`
	Name             string `json:"Name"`
	LegalName        string `json:"LegalName"`
	CountryCode      string `json:"CountryCode"`
	OrganisationType string `json:"OrganisationType"`
}

// OrganisationsResponse wraps the Organisations endpoint payload
type OrganisationsResponse struct {
	Organisations []Organisation `json:"Organisations"`
}

// Account is a chart-of-accounts entry; only the fields the server
// inspects or relays are modeled
type Account struct {
	AccountID         string `json:"AccountID"`
	Code              string `json:"Code"`
	Name              string `json:"Name"`
	Status            string `json:"Status"`
	Type              string `json:"Type"`
	BankAccountNumber string `json:"BankAccountNumber,omitempty"`
	CurrencyCode      string `json:"CurrencyCode,omitempty"`
}

// AccountsResponse wraps the Accounts endpoint payload
type AccountsResponse struct {
	Accounts []Account `json:"Accounts"`
}
