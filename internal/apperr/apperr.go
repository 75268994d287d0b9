// apperr/apperr.go
package apperr

import "fmt"

// Kind classifies an error so the HTTP boundary can map it to a status
// code without inspecting messages.
type Kind int

const (
	// AuthRequired means no usable token exists; the client must log in.
	AuthRequired Kind = iota
	// Validation means the request body or parameters failed validation.
	Validation
	// Domain means a business rule rejected the request (invalid tenant
	// selection, no tenants available, and so on).
	Domain
	// Remote means the upstream accounting system failed.
	Remote
)

// Error is the tagged error carried from services to the HTTP boundary.
type Error struct {
	Kind    Kind
	Code    string // machine-readable code, set for Domain errors
	Message string
	Status  int // optional HTTP status override
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Authf creates an AuthRequired error.
func Authf(format string, args ...interface{}) *Error {
	return &Error{Kind: AuthRequired, Message: fmt.Sprintf(format, args...)}
}

// Validationf creates a Validation error.
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: Validation, Message: fmt.Sprintf(format, args...)}
}

// Domainf creates a Domain error carrying a machine-readable code.
func Domainf(code, format string, args ...interface{}) *Error {
	return &Error{Kind: Domain, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Remotef wraps an upstream failure.
func Remotef(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: Remote, Message: fmt.Sprintf(format, args...), Err: err}
}

// WithStatus overrides the HTTP status the boundary writes for this error.
func (e *Error) WithStatus(status int) *Error {
	e.Status = status
	return e
}
