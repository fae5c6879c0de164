// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardledger/backend/internal/domain/entity"
)

// LedgerTx is the unit-of-work handle passed to an atomic ledger operation.
// Everything done through it commits together or not at all.
type LedgerTx interface {
	// Card loads a card inside the transaction. Returns
	// domainerror.ErrCardNotFound when the id does not exist.
	Card(ctx context.Context, id uuid.UUID) (*entity.Card, error)

	// SaveCardBalance persists the card's balance under optimistic
	// concurrency: it fails with domainerror.ErrConcurrencyConflict when a
	// concurrent writer bumped the card's version first.
	SaveCardBalance(ctx context.Context, card *entity.Card) error

	// InsertTransaction appends a record to the transaction log.
	InsertTransaction(ctx context.Context, transaction *entity.Transaction) error

	// UpdateTransaction rewrites an existing record.
	UpdateTransaction(ctx context.Context, transaction *entity.Transaction) error

	// DeleteTransaction removes a record from the log.
	DeleteTransaction(ctx context.Context, id uuid.UUID) error

	// TransactionByID loads a record inside the transaction.
	TransactionByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// SumEffects recomputes the card's balance from the full transaction
	// history: credits where the card is the destination minus debits
	// where it is the source.
	SumEffects(ctx context.Context, cardID uuid.UUID) (decimal.Decimal, error)
}

// LedgerStore is the single authority for mutating card balances and the
// transaction log.
type LedgerStore interface {
	// Atomically runs fn inside one database transaction. If fn returns an
	// error every change made through the LedgerTx is rolled back, so a
	// partial update (debit applied, credit failed) is never visible.
	Atomically(ctx context.Context, fn func(tx LedgerTx) error) error
}
