// invoice/models.go
package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// defaultCurrencyCode is applied when an invoice omits its currency
const defaultCurrencyCode = "AUD"

// Date is a calendar date with no time component, serialized as
// 2006-01-02 to match Xero's date fields.
type Date struct {
	time.Time
}

// UnmarshalJSON parses a quoted 2006-01-02 date
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	d.Time = t
	return nil
}

// MarshalJSON renders the date as a quoted 2006-01-02 string
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// Contact references a Xero contact by ID
type Contact struct {
	ContactID string `json:"ContactID" validate:"required"`
}

// LineItem is a single invoice line
type LineItem struct {
	Description string  `json:"Description" validate:"required"`
	Quantity    int     `json:"Quantity" validate:"required"`
	UnitAmount  float64 `json:"UnitAmount" validate:"required"`
	AccountCode string  `json:"AccountCode" validate:"required"`
	TaxType     string  `json:"TaxType" validate:"required"`
}

// Invoice is the validated input shape for invoice creation. Field names
// follow the remote system's capitalized naming convention, so the
// validated request can be submitted as-is.
type Invoice struct {
	Type          string     `json:"Type" validate:"required,oneof=ACCREC ACCPAY"`
	Contact       Contact    `json:"Contact" validate:"required"`
	LineItems     []LineItem `json:"LineItems" validate:"required,min=1,dive"`
	Date          Date       `json:"Date" validate:"required"`
	DueDate       Date       `json:"DueDate" validate:"required"`
	InvoiceNumber string     `json:"InvoiceNumber"`
	Status        string     `json:"Status" validate:"required,oneof=DRAFT SUBMITTED AUTHORISED"`
	CurrencyCode  string     `json:"CurrencyCode"`
	Reference     string     `json:"Reference,omitempty"`
}

// Request is a batch of invoices to create in a single remote call
type Request struct {
	Invoices []Invoice `json:"Invoices" validate:"required,min=1,dive"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the batch against the DTO constraints and applies
// defaults. It must succeed before any remote call is made.
func (r *Request) Validate() error {
	for i := range r.Invoices {
		if r.Invoices[i].CurrencyCode == "" {
			r.Invoices[i].CurrencyCode = defaultCurrencyCode
		}
	}

	if err := validate.Struct(r); err != nil {
		return err
	}
	return nil
}
