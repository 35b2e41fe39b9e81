package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Ledger errors
var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrConcurrentUpdate  = errors.New("record was modified concurrently")
)

// Loan errors
var (
	ErrLoanNotPending  = errors.New("loan is not pending")
	ErrLoanNotApproved = errors.New("loan is not approved")
	ErrLoanNotActive   = errors.New("loan is not active")
	ErrOverpayment     = errors.New("payment amount exceeds remaining balance")
)

// NotFoundError names the missing resource and matches ErrNotFound
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError reports a rejected input field and matches ErrInvalidInput
type ValidationError struct {
	Field   string
	Message string
}

// Invalid builds a ValidationError
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
