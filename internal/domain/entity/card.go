// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/cardledger/backend/internal/domain/error"
	"github.com/cardledger/backend/internal/domain/valueobject"
)

// AllCardsID is the sentinel card ID meaning "across all cards" in filters
// and aggregations.
var AllCardsID = uuid.Nil

// Card represents a user account denominated in a single currency.
// Balance is derived state: it always equals the signed sum of the effects
// of every transaction referencing the card, maintained incrementally by
// the ledger and reconcilable from history.
type Card struct {
	ID       uuid.UUID
	Name     string
	Number   string
	Currency valueobject.Currency
	Color    string // opaque display metadata, never interpreted
	Balance  decimal.Decimal
	Version  int64 // optimistic concurrency token for balance updates
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCard creates a new Card entity with a zero balance.
func NewCard(name, number string, currency valueobject.Currency, color string) *Card {
	now := time.Now().UTC()

	return &Card{
		ID:        uuid.New(),
		Name:      name,
		Number:    number,
		Currency:  currency,
		Color:     color,
		Balance:   decimal.Zero,
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BalanceMoney returns the balance as a Money value in the card's currency.
func (c *Card) BalanceMoney() valueobject.Money {
	return valueobject.NewMoney(c.Balance, c.Currency)
}

// ApplyDelta mutates the balance by exactly the signed amount. The delta
// must be denominated in the card's own currency; the engine rejects
// mixed-currency deltas instead of converting.
func (c *Card) ApplyDelta(delta valueobject.Money) error {
	if delta.Currency != c.Currency {
		return domainerror.ErrCurrencyMismatch
	}
	c.Balance = c.Balance.Add(delta.Amount)
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// CardSnapshot is the read-side view of a card served to dashboards:
// the maintained balance plus the card's lifetime income/expense totals.
type CardSnapshot struct {
	Card    *Card
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}
