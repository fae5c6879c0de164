// Package ledger contains the use cases that own the transaction log and
// card balances.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardledger/backend/internal/application/adapter"
	"github.com/cardledger/backend/internal/domain/entity"
	domainerror "github.com/cardledger/backend/internal/domain/error"
	"github.com/cardledger/backend/internal/domain/valueobject"
)

// maxConflictRetries bounds how often a write is retried after losing a
// concurrent balance update race before the conflict is surfaced.
const maxConflictRetries = 3

// TransactionOutput is the use-case view of a recorded transaction.
type TransactionOutput struct {
	ID         uuid.UUID
	Type       entity.TransactionType
	Amount     decimal.Decimal
	Date       time.Time
	Asset      entity.Asset
	Category   entity.Category
	Notes      string
	FromCardID *uuid.UUID
	ToCardID   *uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func toTransactionOutput(t *entity.Transaction) *TransactionOutput {
	return &TransactionOutput{
		ID:         t.ID,
		Type:       t.Type,
		Amount:     t.Amount,
		Date:       t.Date,
		Asset:      t.Asset,
		Category:   t.Category,
		Notes:      t.Notes,
		FromCardID: t.FromCardID,
		ToCardID:   t.ToCardID,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

// atomicallyWithRetry runs fn through the ledger store, retrying a bounded
// number of times when a concurrent writer bumped a card version first.
// Any other error is surfaced immediately.
func atomicallyWithRetry(ctx context.Context, store adapter.LedgerStore, fn func(tx adapter.LedgerTx) error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = store.Atomically(ctx, fn)
		if !errors.Is(err, domainerror.ErrConcurrencyConflict) {
			return err
		}
		slog.Debug("Retrying ledger write after concurrency conflict", "attempt", attempt+1)
	}
	return domainerror.NewLedgerError(
		domainerror.ErrCodeConcurrencyConflict,
		"ledger write kept conflicting with concurrent updates",
		err,
	)
}

// applyEffects loads every referenced card once, applies the signed deltas
// and persists the new balances. Missing cards surface ErrCardNotFound; the
// surrounding DB transaction guarantees all-or-nothing.
func applyEffects(ctx context.Context, tx adapter.LedgerTx, effects []entity.Effect) error {
	// Merge deltas per card so a card touched twice gets one balance write.
	order := make([]uuid.UUID, 0, len(effects))
	merged := make(map[uuid.UUID]decimal.Decimal, len(effects))
	for _, effect := range effects {
		if _, seen := merged[effect.CardID]; !seen {
			order = append(order, effect.CardID)
		}
		merged[effect.CardID] = merged[effect.CardID].Add(effect.Amount)
	}

	for _, cardID := range order {
		card, err := tx.Card(ctx, cardID)
		if err != nil {
			return err
		}
		delta := valueobject.NewMoney(merged[cardID], card.Currency)
		if err := card.ApplyDelta(delta); err != nil {
			return err
		}
		if err := tx.SaveCardBalance(ctx, card); err != nil {
			return err
		}
	}
	return nil
}

// invertEffects returns the effects with every sign flipped.
func invertEffects(effects []entity.Effect) []entity.Effect {
	inverted := make([]entity.Effect, len(effects))
	for i, effect := range effects {
		inverted[i] = entity.Effect{CardID: effect.CardID, Amount: effect.Amount.Neg()}
	}
	return inverted
}

// checkRequestCurrency rejects a transaction whose explicit currency tag
// disagrees with the card the amount is denominated in: the destination for
// income, the source for expense and convert. An empty tag means the caller
// entered the amount in the card's own currency.
func checkRequestCurrency(ctx context.Context, tx adapter.LedgerTx, transaction *entity.Transaction, requestCurrency string) error {
	if requestCurrency == "" {
		return nil
	}
	currency, err := valueobject.ParseCurrency(requestCurrency)
	if err != nil {
		return domainerror.NewCardError(
			domainerror.ErrCodeInvalidCurrency,
			"currency must be IDR, THB or USD",
			err,
		)
	}

	var anchorID uuid.UUID
	switch transaction.Type {
	case entity.TransactionTypeIncome:
		anchorID = *transaction.ToCardID
	default:
		anchorID = *transaction.FromCardID
	}
	card, err := tx.Card(ctx, anchorID)
	if err != nil {
		return err
	}
	if card.Currency != currency {
		return domainerror.NewCardError(
			domainerror.ErrCodeCurrencyMismatch,
			"transaction currency does not match the card's currency",
			domainerror.ErrCurrencyMismatch,
		)
	}
	return nil
}

// invalidateSeriesCache drops cached dashboard payloads after a ledger
// write. Cache trouble never fails the write.
func invalidateSeriesCache(ctx context.Context, cache adapter.SeriesCache) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		slog.Warn("Failed to invalidate series cache", "error", err)
	}
}
