// Package card contains card-related use cases.
package card

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cardledger/backend/internal/application/adapter"
	domainerror "github.com/cardledger/backend/internal/domain/error"
)

// DeleteCardInput represents the input for card deletion.
type DeleteCardInput struct {
	CardID uuid.UUID
}

// DeleteCardUseCase deletes a card. Deletion is blocked while any
// transaction still references the card; the ledger history stays intact
// and the caller must delete or move the transactions first.
type DeleteCardUseCase struct {
	cardRepo        adapter.CardRepository
	transactionRepo adapter.TransactionRepository
}

// NewDeleteCardUseCase creates a new DeleteCardUseCase instance.
func NewDeleteCardUseCase(
	cardRepo adapter.CardRepository,
	transactionRepo adapter.TransactionRepository,
) *DeleteCardUseCase {
	return &DeleteCardUseCase{
		cardRepo:        cardRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute performs the card deletion.
func (uc *DeleteCardUseCase) Execute(ctx context.Context, input DeleteCardInput) error {
	if _, err := uc.cardRepo.FindByID(ctx, input.CardID); err != nil {
		if errors.Is(err, domainerror.ErrCardNotFound) {
			return domainerror.NewCardError(
				domainerror.ErrCodeCardNotFound,
				"card not found",
				domainerror.ErrCardNotFound,
			)
		}
		return fmt.Errorf("failed to find card: %w", err)
	}

	inUse, err := uc.transactionRepo.HasTransactions(ctx, input.CardID)
	if err != nil {
		return fmt.Errorf("failed to check card usage: %w", err)
	}
	if inUse {
		return domainerror.NewCardError(
			domainerror.ErrCodeCardInUse,
			"card still has transactions and cannot be deleted",
			domainerror.ErrCardInUse,
		)
	}

	if err := uc.cardRepo.Delete(ctx, input.CardID); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}
