// Package error defines domain-specific errors for the card ledger engine.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget is not found in the system.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrInvalidBudgetMonth is returned when the budget month is not in YYYY-MM format.
	ErrInvalidBudgetMonth = errors.New("invalid budget month")

	// ErrInvalidBudgetAmount is returned when the budget amount is zero or negative.
	ErrInvalidBudgetAmount = errors.New("invalid budget amount")

	// ErrDuplicateBudget is returned when a budget already exists for the card and month.
	ErrDuplicateBudget = errors.New("budget already exists for this card and month")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BGT-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	ErrCodeBudgetNotFound      BudgetErrorCode = "BGT-010001"
	ErrCodeInvalidBudgetMonth  BudgetErrorCode = "BGT-010002"
	ErrCodeInvalidBudgetAmount BudgetErrorCode = "BGT-010003"
	ErrCodeDuplicateBudget     BudgetErrorCode = "BGT-010004"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
