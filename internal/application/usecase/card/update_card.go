// Package card contains card-related use cases.
package card

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cardledger/backend/internal/application/adapter"
	domainerror "github.com/cardledger/backend/internal/domain/error"
)

// UpdateCardInput represents the input for card update. Nil fields keep the
// current value. Currency and balance are not editable: the currency is
// fixed at creation and the balance belongs to the ledger.
type UpdateCardInput struct {
	CardID uuid.UUID
	Name   *string
	Number *string
	Color  *string
}

// UpdateCardOutput represents the output of card update.
type UpdateCardOutput struct {
	Card *CardOutput
}

// UpdateCardUseCase handles simple field edits with no balance effect.
type UpdateCardUseCase struct {
	cardRepo adapter.CardRepository
}

// NewUpdateCardUseCase creates a new UpdateCardUseCase instance.
func NewUpdateCardUseCase(cardRepo adapter.CardRepository) *UpdateCardUseCase {
	return &UpdateCardUseCase{
		cardRepo: cardRepo,
	}
}

// Execute performs the card update.
func (uc *UpdateCardUseCase) Execute(ctx context.Context, input UpdateCardInput) (*UpdateCardOutput, error) {
	card, err := uc.cardRepo.FindByID(ctx, input.CardID)
	if err != nil {
		if errors.Is(err, domainerror.ErrCardNotFound) {
			return nil, domainerror.NewCardError(
				domainerror.ErrCodeCardNotFound,
				"card not found",
				domainerror.ErrCardNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find card: %w", err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" || len(name) > MaxCardNameLength {
			return nil, domainerror.NewCardError(
				domainerror.ErrCodeInvalidCardName,
				fmt.Sprintf("card name is required and must not exceed %d characters", MaxCardNameLength),
				domainerror.ErrInvalidCardName,
			)
		}
		card.Name = name
	}
	if input.Number != nil {
		card.Number = *input.Number
	}
	if input.Color != nil {
		card.Color = *input.Color
	}
	card.UpdatedAt = time.Now().UTC()

	if err := uc.cardRepo.Update(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	return &UpdateCardOutput{Card: toCardOutput(card)}, nil
}
