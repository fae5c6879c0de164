// Package ledger contains the use cases that own the transaction log and
// card balances.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cardledger/backend/internal/application/adapter"
	domainerror "github.com/cardledger/backend/internal/domain/error"
)

// DeleteTransactionInput represents the input for deleting a transaction.
type DeleteTransactionInput struct {
	TransactionID uuid.UUID
}

// DeleteTransactionUseCase removes a transaction and reverses its original
// balance effect — the exact inverse of recording it. Every affected card
// returns to its pre-record balance.
type DeleteTransactionUseCase struct {
	store adapter.LedgerStore
	cache adapter.SeriesCache
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(store adapter.LedgerStore, cache adapter.SeriesCache) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		store: store,
		cache: cache,
	}
}

// Execute performs the deletion.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	err := atomicallyWithRetry(ctx, uc.store, func(tx adapter.LedgerTx) error {
		existing, err := tx.TransactionByID(ctx, input.TransactionID)
		if err != nil {
			if errors.Is(err, domainerror.ErrTransactionNotFound) {
				return domainerror.NewTransactionError(
					domainerror.ErrCodeTransactionNotFound,
					"transaction not found",
					domainerror.ErrTransactionNotFound,
				)
			}
			return err
		}

		if err := applyEffects(ctx, tx, invertEffects(existing.Effects())); err != nil {
			return err
		}
		return tx.DeleteTransaction(ctx, existing.ID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	invalidateSeriesCache(ctx, uc.cache)
	return nil
}
