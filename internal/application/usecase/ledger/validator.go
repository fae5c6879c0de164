// Package ledger contains the use cases that own the transaction log and
// card balances.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardledger/backend/internal/domain/entity"
	domainerror "github.com/cardledger/backend/internal/domain/error"
)

const (
	// MaxNotesLength is the maximum allowed length for transaction notes.
	MaxNotesLength = 1000

	// DateLayout is the calendar-date format accepted for transaction dates.
	DateLayout = "2006-01-02"
)

// TransactionCandidate is the raw transaction intent submitted by a caller,
// before any rule has been checked.
type TransactionCandidate struct {
	Type       string
	Amount     decimal.Decimal
	HasAmount  bool
	Date       string
	Asset      string
	Category   string
	Notes      string
	Currency   string // optional explicit currency tag, checked against the card
	FromCardID *uuid.UUID
	ToCardID   *uuid.UUID
}

// ValidateTransaction checks a candidate against the business rules and, on
// success, returns an immutable entity ready for the ledger. Checks run in
// precedence passes; the first failing pass returns every field error found
// within it. Validation is pure: no state is read or written.
func ValidateTransaction(candidate TransactionCandidate) (*entity.Transaction, error) {
	transactionType := entity.TransactionType(candidate.Type)
	if !transactionType.IsValid() {
		ve := &domainerror.ValidationError{}
		ve.Add("type", domainerror.ErrCodeInvalidTransactionType,
			"type must be 'income', 'expense' or 'convert'")
		return nil, ve
	}

	// Pass 1: date and amount.
	ve := &domainerror.ValidationError{}
	var date time.Time
	if candidate.Date == "" {
		ve.Add("transaction_date", domainerror.ErrCodeInvalidTransactionDate,
			"transaction_date is required")
	} else {
		parsed, err := time.Parse(DateLayout, candidate.Date)
		if err != nil {
			ve.Add("transaction_date", domainerror.ErrCodeInvalidTransactionDate,
				"transaction_date must be a calendar date in YYYY-MM-DD format")
		} else {
			date = parsed
		}
	}
	if !candidate.HasAmount {
		ve.Add("amount", domainerror.ErrCodeInvalidTransactionAmount,
			"amount is required")
	} else if !candidate.Amount.IsPositive() {
		ve.Add("amount", domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero")
	}
	if len(ve.Fields) > 0 {
		return nil, ve
	}

	// Pass 2: variant-specific fields.
	ve = &domainerror.ValidationError{}
	switch transactionType {
	case entity.TransactionTypeIncome:
		validateAssetAndCategory(ve, candidate, transactionType)
		if candidate.ToCardID == nil {
			ve.Add("to_cards_id", domainerror.ErrCodeMissingCardReference,
				"income requires to_cards_id")
		}
		if candidate.FromCardID != nil {
			ve.Add("from_cards_id", domainerror.ErrCodeMissingCardReference,
				"income must not set from_cards_id")
		}
	case entity.TransactionTypeExpense:
		validateAssetAndCategory(ve, candidate, transactionType)
		if candidate.FromCardID == nil {
			ve.Add("from_cards_id", domainerror.ErrCodeMissingCardReference,
				"expense requires from_cards_id")
		}
		if candidate.ToCardID != nil {
			ve.Add("to_cards_id", domainerror.ErrCodeMissingCardReference,
				"expense must not set to_cards_id")
		}
	case entity.TransactionTypeConvert:
		if candidate.FromCardID == nil {
			ve.Add("from_cards_id", domainerror.ErrCodeMissingCardReference,
				"convert requires from_cards_id")
		}
		if candidate.ToCardID == nil {
			ve.Add("to_cards_id", domainerror.ErrCodeMissingCardReference,
				"convert requires to_cards_id")
		}
		if candidate.FromCardID != nil && candidate.ToCardID != nil &&
			*candidate.FromCardID == *candidate.ToCardID {
			ve.Add("to_cards_id", domainerror.ErrCodeSameCard,
				"convert requires two distinct cards")
		}
		if candidate.Category != "" {
			ve.Add("category", domainerror.ErrCodeInvalidCategory,
				"convert does not take a category")
		}
	}
	if len(candidate.Notes) > MaxNotesLength {
		ve.Add("notes", domainerror.ErrCodeNotesTooLong,
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength))
	}
	if len(ve.Fields) > 0 {
		return nil, ve
	}

	return entity.NewTransaction(
		transactionType,
		candidate.Amount,
		date,
		entity.Asset(candidate.Asset),
		entity.Category(candidate.Category),
		candidate.Notes,
		candidate.FromCardID,
		candidate.ToCardID,
	), nil
}

// validateAssetAndCategory checks the fields required for income and expense.
func validateAssetAndCategory(ve *domainerror.ValidationError, candidate TransactionCandidate, transactionType entity.TransactionType) {
	if candidate.Asset == "" {
		ve.Add("asset", domainerror.ErrCodeInvalidAsset, "asset is required")
	} else if !entity.Asset(candidate.Asset).IsValid() {
		ve.Add("asset", domainerror.ErrCodeInvalidAsset, "asset must be 'cash' or 'transfer'")
	}
	if candidate.Category == "" {
		ve.Add("category", domainerror.ErrCodeInvalidCategory, "category is required")
	} else if !entity.Category(candidate.Category).IsValidFor(transactionType) {
		ve.Add("category", domainerror.ErrCodeInvalidCategory,
			fmt.Sprintf("category %q is not valid for %s", candidate.Category, transactionType))
	}
}
