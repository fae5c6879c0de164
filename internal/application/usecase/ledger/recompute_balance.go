// Package ledger contains the use cases that own the transaction log and
// card balances.
package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardledger/backend/internal/application/adapter"
)

// RecomputeBalanceInput represents the input for balance reconciliation.
type RecomputeBalanceInput struct {
	CardID uuid.UUID
}

// RecomputeBalanceOutput reports the reconciliation result.
type RecomputeBalanceOutput struct {
	CardID     uuid.UUID
	Previous   decimal.Decimal
	Recomputed decimal.Decimal
	Drift      decimal.Decimal
	Consistent bool
}

// RecomputeBalanceUseCase recomputes a card's balance from the full
// transaction history and persists the result. With a healthy ledger the
// recomputed value always equals the maintained one; any drift is repaired
// and reported so it cannot hide.
type RecomputeBalanceUseCase struct {
	store adapter.LedgerStore
	cache adapter.SeriesCache
}

// NewRecomputeBalanceUseCase creates a new RecomputeBalanceUseCase instance.
func NewRecomputeBalanceUseCase(store adapter.LedgerStore, cache adapter.SeriesCache) *RecomputeBalanceUseCase {
	return &RecomputeBalanceUseCase{
		store: store,
		cache: cache,
	}
}

// Execute performs the reconciliation.
func (uc *RecomputeBalanceUseCase) Execute(ctx context.Context, input RecomputeBalanceInput) (*RecomputeBalanceOutput, error) {
	var output *RecomputeBalanceOutput

	err := atomicallyWithRetry(ctx, uc.store, func(tx adapter.LedgerTx) error {
		card, err := tx.Card(ctx, input.CardID)
		if err != nil {
			return err
		}

		recomputed, err := tx.SumEffects(ctx, card.ID)
		if err != nil {
			return err
		}

		previous := card.Balance
		drift := previous.Sub(recomputed)
		if !drift.IsZero() {
			slog.Warn("Card balance drifted from transaction history",
				"cardID", card.ID,
				"maintained", previous.String(),
				"recomputed", recomputed.String(),
			)
			card.Balance = recomputed
			if err := tx.SaveCardBalance(ctx, card); err != nil {
				return err
			}
		}

		output = &RecomputeBalanceOutput{
			CardID:     card.ID,
			Previous:   previous,
			Recomputed: recomputed,
			Drift:      drift,
			Consistent: drift.IsZero(),
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to recompute balance: %w", err)
	}

	if !output.Consistent {
		invalidateSeriesCache(ctx, uc.cache)
	}
	return output, nil
}
