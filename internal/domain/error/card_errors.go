// Package error defines domain-specific errors for the card ledger engine.
package error

import "errors"

// Card domain errors.
var (
	// ErrCardNotFound is returned when a referenced card does not exist.
	ErrCardNotFound = errors.New("card not found")

	// ErrCardInUse is returned when deleting a card that still has transactions referencing it.
	ErrCardInUse = errors.New("card has transactions and cannot be deleted")

	// ErrInvalidCardName is returned when the card name is empty or too long.
	ErrInvalidCardName = errors.New("invalid card name")
)

// CardErrorCode defines error codes for card errors.
// Format: CRD-XXYYYY where XX is category and YYYY is specific error.
type CardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidCardName  CardErrorCode = "CRD-010001"
	ErrCodeInvalidCurrency  CardErrorCode = "CRD-010002"
	ErrCodeCardNotFound     CardErrorCode = "CRD-010003"
	ErrCodeCardInUse        CardErrorCode = "CRD-010004"
	ErrCodeCurrencyMismatch CardErrorCode = "CRD-010005"
)

// CardError represents a card error with code and message.
type CardError struct {
	Code    CardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CardError) Unwrap() error {
	return e.Err
}

// NewCardError creates a new CardError with the given code and message.
func NewCardError(code CardErrorCode, message string, err error) *CardError {
	return &CardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
