// Package error defines domain-specific errors for the card ledger engine.
package error

import (
	"errors"
	"strings"
)

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionDate is returned when the transaction date is missing or unparseable.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionAmount is returned when the amount is missing, zero or negative.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrInvalidAsset is returned when the asset is not cash or transfer.
	ErrInvalidAsset = errors.New("invalid asset")

	// ErrInvalidCategory is returned when the category is missing or not in the
	// fixed set for the transaction type.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrSameCard is returned when a convert references the same card on both sides.
	ErrSameCard = errors.New("convert requires two distinct cards")

	// ErrMissingCardReference is returned when the required card reference is absent.
	ErrMissingCardReference = errors.New("missing card reference")

	// ErrNotesTooLong is returned when the transaction notes exceed the maximum length.
	ErrNotesTooLong = errors.New("notes too long")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010003"
	ErrCodeTransactionNotFound      TransactionErrorCode = "TXN-010004"
	ErrCodeInvalidAsset             TransactionErrorCode = "TXN-010005"
	ErrCodeInvalidCategory          TransactionErrorCode = "TXN-010006"
	ErrCodeSameCard                 TransactionErrorCode = "TXN-010007"
	ErrCodeMissingCardReference     TransactionErrorCode = "TXN-010008"
	ErrCodeValidationFailed         TransactionErrorCode = "TXN-010009"
	ErrCodeNotesTooLong             TransactionErrorCode = "TXN-010010"

	// Throttling errors (02XXXX)
	ErrCodeRateLimited TransactionErrorCode = "TXN-020001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string
	Code    TransactionErrorCode
	Message string
}

// ValidationError carries every field error found in one validation pass.
// It is returned instead of stopping at the first bad field so the caller
// can surface all problems at once.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Has reports whether the given field failed validation.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Add appends a field error.
func (e *ValidationError) Add(field string, code TransactionErrorCode, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Code: code, Message: message})
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
