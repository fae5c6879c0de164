// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType tags the closed set of transaction variants.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeConvert TransactionType = "convert"
)

// IsValid reports whether the type is one of the three known variants.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeConvert:
		return true
	}
	return false
}

// Asset is the funding channel of an income or expense.
type Asset string

const (
	AssetCash     Asset = "cash"
	AssetTransfer Asset = "transfer"
)

// IsValid reports whether the asset is cash or transfer.
func (a Asset) IsValid() bool {
	return a == AssetCash || a == AssetTransfer
}

// Category is the fixed spending/earning category of an income or expense.
// Convert transactions carry no category.
type Category string

// Income categories.
const (
	CategorySalary    Category = "salary"
	CategoryAllowance Category = "allowance"
	CategoryBusiness  Category = "business"
)

// Expense categories.
const (
	CategoryFoodDrinks         Category = "food_drinks"
	CategoryTopup              Category = "topup"
	CategoryTransportation     Category = "transportation"
	CategoryHealth             Category = "health"
	CategoryShopping           Category = "shopping"
	CategorySavingsInvestments Category = "savings_investments"
	CategoryTravel             Category = "travel"
)

// IncomeCategories lists the valid categories for income transactions.
var IncomeCategories = []Category{CategorySalary, CategoryAllowance, CategoryBusiness}

// ExpenseCategories lists the valid categories for expense transactions.
var ExpenseCategories = []Category{
	CategoryFoodDrinks,
	CategoryTopup,
	CategoryTransportation,
	CategoryHealth,
	CategoryShopping,
	CategorySavingsInvestments,
	CategoryTravel,
}

// IsValidFor reports whether the category belongs to the fixed set for the
// given transaction type.
func (c Category) IsValidFor(t TransactionType) bool {
	var set []Category
	switch t {
	case TransactionTypeIncome:
		set = IncomeCategories
	case TransactionTypeExpense:
		set = ExpenseCategories
	default:
		return false
	}
	for _, valid := range set {
		if c == valid {
			return true
		}
	}
	return false
}

// Transaction is one immutable ledger record. Exactly one of the three
// variants, distinguished by Type:
//
//   - income:  Amount > 0 credited to ToCardID; Asset and Category required.
//   - expense: Amount > 0 debited from FromCardID; Asset and Category required.
//   - convert: Amount > 0 moved from FromCardID to ToCardID as a face amount.
//     No FX rate is applied and no category is carried.
//
// Records are never mutated in place; edits and deletes go through the
// ledger, which recomputes the affected card balances.
type Transaction struct {
	ID         uuid.UUID
	Type       TransactionType
	Amount     decimal.Decimal
	Date       time.Time // calendar date, no time component
	Asset      Asset     // income/expense only
	Category   Category  // income/expense only
	Notes      string
	FromCardID *uuid.UUID
	ToCardID   *uuid.UUID
	Seq        int64 // insertion order, tie-break for equal dates
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewTransaction creates a new Transaction entity. Date is truncated to a
// calendar date in UTC.
func NewTransaction(
	transactionType TransactionType,
	amount decimal.Decimal,
	date time.Time,
	asset Asset,
	category Category,
	notes string,
	fromCardID *uuid.UUID,
	toCardID *uuid.UUID,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:         uuid.New(),
		Type:       transactionType,
		Amount:     amount,
		Date:       DateOnly(date),
		Asset:      asset,
		Category:   category,
		Notes:      notes,
		FromCardID: fromCardID,
		ToCardID:   toCardID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// DateOnly strips any time component, keeping the UTC calendar date.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Effect is a signed balance delta against a single card.
type Effect struct {
	CardID uuid.UUID
	Amount decimal.Decimal
}

// Effects returns the signed balance deltas this transaction applies,
// switching exhaustively over the variant tag:
// income credits ToCardID, expense debits FromCardID, and convert debits
// FromCardID and credits ToCardID with the same face amount.
func (t *Transaction) Effects() []Effect {
	switch t.Type {
	case TransactionTypeIncome:
		return []Effect{{CardID: *t.ToCardID, Amount: t.Amount}}
	case TransactionTypeExpense:
		return []Effect{{CardID: *t.FromCardID, Amount: t.Amount.Neg()}}
	case TransactionTypeConvert:
		return []Effect{
			{CardID: *t.FromCardID, Amount: t.Amount.Neg()},
			{CardID: *t.ToCardID, Amount: t.Amount},
		}
	}
	return nil
}

// References reports whether the transaction touches the given card.
func (t *Transaction) References(cardID uuid.UUID) bool {
	if t.FromCardID != nil && *t.FromCardID == cardID {
		return true
	}
	if t.ToCardID != nil && *t.ToCardID == cardID {
		return true
	}
	return false
}

// TransactionPage represents one page of a transaction listing, shaped for
// the page envelope the dashboards consume.
type TransactionPage struct {
	Transactions []*Transaction
	Total        int64
	CurrentPage  int
	LastPage     int
	PerPage      int
	From         int // 1-based index of the first row on the page, 0 when empty
	To           int // 1-based index of the last row on the page, 0 when empty
}
