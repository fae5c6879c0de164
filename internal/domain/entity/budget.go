// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is a spending target for one calendar month, attached to a single
// card or (CardID nil) to all cards. Aggregation buckets reference it.
type Budget struct {
	ID        uuid.UUID
	CardID    *uuid.UUID // nil means all cards
	Month     string     // "YYYY-MM"
	Amount    decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBudget creates a new Budget entity.
func NewBudget(cardID *uuid.UUID, month string, amount decimal.Decimal) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:        uuid.New(),
		CardID:    cardID,
		Month:     month,
		Amount:    amount,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
