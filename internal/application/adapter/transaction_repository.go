// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardledger/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
// CardID equal to entity.AllCardsID matches transactions on every card.
type TransactionFilter struct {
	CardID    uuid.UUID
	Type      *entity.TransactionType
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionPagination defines pagination options.
type TransactionPagination struct {
	Page    int
	PerPage int
}

// CardTotals represents lifetime income and expense sums for one card.
// Convert transactions are transfers, not P&L events, and are excluded.
type CardTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// TransactionRepository defines the read-side interface for the transaction log.
// All mutations go through the LedgerStore so balance effects stay atomic.
type TransactionRepository interface {
	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByFilter retrieves transactions matching the filter, ordered by
	// date descending with insertion order breaking ties, paginated.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*entity.TransactionPage, error)

	// FindByCard retrieves every transaction referencing the card as
	// source or destination, in insertion order.
	FindByCard(ctx context.Context, cardID uuid.UUID) ([]*entity.Transaction, error)

	// HasTransactions reports whether any transaction references the card.
	HasTransactions(ctx context.Context, cardID uuid.UUID) (bool, error)

	// TotalsByCard returns lifetime income/expense totals keyed by card ID.
	TotalsByCard(ctx context.Context) (map[uuid.UUID]CardTotals, error)
}
