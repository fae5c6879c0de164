// Package valueobject defines immutable value types shared across the domain.
package valueobject

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	domainerror "github.com/cardledger/backend/internal/domain/error"
)

// Currency is one of the fixed set of currencies a card can be denominated in.
type Currency string

const (
	CurrencyIDR Currency = "IDR"
	CurrencyTHB Currency = "THB"
	CurrencyUSD Currency = "USD"
)

// ParseCurrency validates a raw currency code.
func ParseCurrency(raw string) (Currency, error) {
	switch Currency(raw) {
	case CurrencyIDR, CurrencyTHB, CurrencyUSD:
		return Currency(raw), nil
	default:
		return "", domainerror.ErrInvalidCurrency
	}
}

// IsValid reports whether the currency is one of the supported codes.
func (c Currency) IsValid() bool {
	_, err := ParseCurrency(string(c))
	return err == nil
}

// currencyLocale pairs the display locale and symbol used when formatting
// amounts, mirroring the Intl.NumberFormat output the dashboards expect.
type currencyLocale struct {
	tag    language.Tag
	symbol string
}

var currencyLocales = map[Currency]currencyLocale{
	CurrencyIDR: {language.Indonesian, "Rp"},
	CurrencyTHB: {language.Thai, "฿"},
	CurrencyUSD: {language.AmericanEnglish, "$"},
}

// Money is an amount paired with a currency. Amounts are arbitrary-precision
// decimals; no floating point is used for arithmetic.
type Money struct {
	Amount   decimal.Decimal
	Currency Currency
}

// NewMoney creates a Money value.
func NewMoney(amount decimal.Decimal, currency Currency) Money {
	return Money{Amount: amount, Currency: currency}
}

// Zero returns a zero amount in the given currency.
func Zero(currency Currency) Money {
	return Money{Amount: decimal.Zero, Currency: currency}
}

// Add returns m + other. Adding across currencies fails: the engine never
// converts between currencies.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, domainerror.ErrCurrencyMismatch
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency}, nil
}

// Sub returns m - other, failing on currency mismatch.
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, domainerror.ErrCurrencyMismatch
	}
	return Money{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency}, nil
}

// Negate returns the amount with its sign flipped.
func (m Money) Negate() Money {
	return Money{Amount: m.Amount.Neg(), Currency: m.Currency}
}

// Compare returns -1, 0 or 1 comparing m against other.
// Comparing across currencies fails.
func (m Money) Compare(other Money) (int, error) {
	if m.Currency != other.Currency {
		return 0, domainerror.ErrCurrencyMismatch
	}
	return m.Amount.Cmp(other.Amount), nil
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.Amount.IsPositive()
}

// IsNegative reports whether the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.Amount.IsNegative()
}

// Format renders the amount with the currency symbol and locale-aware
// thousands grouping, rounded to zero fractional digits.
// Examples: "Rp50.000", "฿1,250", "$1,000".
func (m Money) Format() string {
	loc, ok := currencyLocales[m.Currency]
	if !ok {
		return m.Amount.StringFixed(0)
	}
	p := message.NewPrinter(loc.tag)
	value, _ := m.Amount.Round(0).Float64()
	return loc.symbol + p.Sprint(number.Decimal(value, number.MaxFractionDigits(0)))
}
