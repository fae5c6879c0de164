// Package error defines domain-specific errors for the card ledger engine.
package error

import "errors"

// Ledger errors.
var (
	// ErrConcurrencyConflict is returned when a balance update lost the race
	// against a concurrent writer. Retryable.
	ErrConcurrencyConflict = errors.New("concurrent balance update conflict")

	// ErrBalanceDrift is returned by reconciliation when the maintained
	// balance does not match the balance recomputed from history.
	ErrBalanceDrift = errors.New("balance does not match transaction history")
)

// LedgerErrorCode defines error codes for ledger errors.
// Format: LGR-XXYYYY where XX is category and YYYY is specific error.
type LedgerErrorCode string

const (
	ErrCodeConcurrencyConflict LedgerErrorCode = "LGR-020001"
	ErrCodeBalanceDrift        LedgerErrorCode = "LGR-020002"
	ErrCodeStorageFailure      LedgerErrorCode = "LGR-030001"
)

// LedgerError represents a ledger error with code and message.
type LedgerError struct {
	Code    LedgerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
