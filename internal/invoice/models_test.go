// invoice/models_test.go
package invoice

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInvoiceJSON() string {
	return `{
		"Invoices": [{
			"Type": "ACCREC",
			"Contact": {"ContactID": "c-1"},
			"LineItems": [{
				"Description": "Consulting",
				"Quantity": 2,
				"UnitAmount": 150.5,
				"AccountCode": "200",
				"TaxType": "OUTPUT"
			}],
			"Date": "2026-07-01",
			"DueDate": "2026-07-15",
			"InvoiceNumber": "INV-001",
			"Status": "DRAFT"
		}]
	}`
}

func TestRequestValidate_ValidBatch(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(validInvoiceJSON()), &req))
	require.NoError(t, req.Validate())

	// Currency defaults when omitted
	assert.Equal(t, "AUD", req.Invoices[0].CurrencyCode)
	assert.Equal(t, "2026-07-01", req.Invoices[0].Date.Format("2006-01-02"))
}

func TestRequestValidate_RejectsPaidStatus(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(validInvoiceJSON()), &req))
	req.Invoices[0].Status = "PAID"

	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Status")
}

func TestRequestValidate_RejectsUnknownType(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(validInvoiceJSON()), &req))
	req.Invoices[0].Type = "ACCXYZ"

	require.Error(t, req.Validate())
}

func TestRequestValidate_RejectsMissingContact(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(validInvoiceJSON()), &req))
	req.Invoices[0].Contact.ContactID = ""

	require.Error(t, req.Validate())
}

func TestRequestValidate_RejectsEmptyBatch(t *testing.T) {
	req := Request{}
	require.Error(t, req.Validate())
}

func TestRequestValidate_RejectsEmptyLineItems(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(validInvoiceJSON()), &req))
	req.Invoices[0].LineItems = nil

	require.Error(t, req.Validate())
}

func TestRequestValidate_KeepsExplicitCurrency(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(validInvoiceJSON()), &req))
	req.Invoices[0].CurrencyCode = "NZD"

	require.NoError(t, req.Validate())
	assert.Equal(t, "NZD", req.Invoices[0].CurrencyCode)
}

func TestDate_RejectsTimestamps(t *testing.T) {
	var d Date
	err := json.Unmarshal([]byte(`"2026-07-01T10:00:00Z"`), &d)
	require.Error(t, err)
}

func TestDate_MarshalRoundTrip(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2026-07-01"`), &d))

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-07-01"`, string(out))
}
