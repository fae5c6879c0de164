// Package ledger contains the use cases that own the transaction log and
// card balances.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardledger/backend/internal/application/adapter"
	"github.com/cardledger/backend/internal/domain/entity"
	domainerror "github.com/cardledger/backend/internal/domain/error"
)

// UpdateTransactionInput represents the input for editing a transaction.
// Nil fields keep the recorded value.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	Amount        *decimal.Decimal
	Date          *string
	Asset         *string
	Category      *string
	Notes         *string
	FromCardID    *uuid.UUID
	ToCardID      *uuid.UUID
}

// UpdateTransactionOutput represents the output of editing a transaction.
type UpdateTransactionOutput struct {
	Transaction *TransactionOutput
}

// UpdateTransactionUseCase edits a recorded transaction. The balance effect
// is the difference between the new and old effects: old card balances are
// reverted and new ones applied inside one database transaction, so a
// transaction that moves between cards never leaves either side half-done.
// The variant tag itself is immutable; changing income into expense means
// deleting and re-recording.
type UpdateTransactionUseCase struct {
	store adapter.LedgerStore
	cache adapter.SeriesCache
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(store adapter.LedgerStore, cache adapter.SeriesCache) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		store: store,
		cache: cache,
	}
}

// Execute performs the edit.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	var updated *entity.Transaction

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

		candidate := overlayCandidate(existing, input)
		revalidated, err := ValidateTransaction(candidate)
		if err != nil {
			return err
		}

		// Keep identity and insertion order; only content changes.
		revalidated.ID = existing.ID
		revalidated.Seq = existing.Seq
		revalidated.CreatedAt = existing.CreatedAt
		revalidated.UpdatedAt = time.Now().UTC()

		// new effect − old effect, applied as one merged delta set.
		diff := append(invertEffects(existing.Effects()), revalidated.Effects()...)
		if err := applyEffects(ctx, tx, diff); err != nil {
			return err
		}
		if err := tx.UpdateTransaction(ctx, revalidated); err != nil {
			return err
		}

		updated = revalidated
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	invalidateSeriesCache(ctx, uc.cache)

	return &UpdateTransactionOutput{Transaction: toTransactionOutput(updated)}, nil
}

// overlayCandidate builds a full candidate from the recorded transaction
// with the requested changes applied on top.
func overlayCandidate(existing *entity.Transaction, input UpdateTransactionInput) TransactionCandidate {
	candidate := TransactionCandidate{
		Type:       string(existing.Type),
		Amount:     existing.Amount,
		HasAmount:  true,
		Date:       existing.Date.Format(DateLayout),
		Asset:      string(existing.Asset),
		Category:   string(existing.Category),
		Notes:      existing.Notes,
		FromCardID: existing.FromCardID,
		ToCardID:   existing.ToCardID,
	}
	if input.Amount != nil {
		candidate.Amount = *input.Amount
	}
	if input.Date != nil {
		candidate.Date = *input.Date
	}
	if input.Asset != nil {
		candidate.Asset = *input.Asset
	}
	if input.Category != nil {
		candidate.Category = *input.Category
	}
	if input.Notes != nil {
		candidate.Notes = *input.Notes
	}
	if input.FromCardID != nil {
		candidate.FromCardID = input.FromCardID
	}
	if input.ToCardID != nil {
		candidate.ToCardID = input.ToCardID
	}
	return candidate
}
