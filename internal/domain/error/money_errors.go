// Package error defines domain-specific errors for the card ledger engine.
package error

import "errors"

// Money and currency errors.
var (
	// ErrInvalidCurrency is returned when a currency code is not one of IDR, THB or USD.
	ErrInvalidCurrency = errors.New("invalid currency")

	// ErrCurrencyMismatch is returned when an operation mixes two currencies.
	// The engine never converts between currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)
