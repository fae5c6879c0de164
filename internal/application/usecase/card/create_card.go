// Package card contains card-related use cases.
package card

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardledger/backend/internal/application/adapter"
	"github.com/cardledger/backend/internal/domain/entity"
	domainerror "github.com/cardledger/backend/internal/domain/error"
	"github.com/cardledger/backend/internal/domain/valueobject"
)

// MaxCardNameLength is the maximum allowed length for card names.
const MaxCardNameLength = 100

// CreateCardInput represents the input for card creation.
type CreateCardInput struct {
	Name     string
	Number   string
	Currency string
	Color    string
}

// CreateCardOutput represents the output of card creation.
type CreateCardOutput struct {
	Card *CardOutput
}

// CardOutput is the use-case view of a card.
type CardOutput struct {
	ID               uuid.UUID
	Name             string
	Number           string
	Currency         valueobject.Currency
	Color            string
	Balance          decimal.Decimal
	FormattedBalance string
}

func toCardOutput(card *entity.Card) *CardOutput {
	return &CardOutput{
		ID:               card.ID,
		Name:             card.Name,
		Number:           card.Number,
		Currency:         card.Currency,
		Color:            card.Color,
		Balance:          card.Balance,
		FormattedBalance: card.BalanceMoney().Format(),
	}
}

// CreateCardUseCase handles card creation. New cards always open with a
// zero balance; money only enters through recorded transactions.
type CreateCardUseCase struct {
	cardRepo adapter.CardRepository
}

// NewCreateCardUseCase creates a new CreateCardUseCase instance.
func NewCreateCardUseCase(cardRepo adapter.CardRepository) *CreateCardUseCase {
	return &CreateCardUseCase{
		cardRepo: cardRepo,
	}
}

// Execute performs the card creation.
func (uc *CreateCardUseCase) Execute(ctx context.Context, input CreateCardInput) (*CreateCardOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || len(name) > MaxCardNameLength {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeInvalidCardName,
			fmt.Sprintf("card name is required and must not exceed %d characters", MaxCardNameLength),
			domainerror.ErrInvalidCardName,
		)
	}

	currency, err := valueobject.ParseCurrency(input.Currency)
	if err != nil {
		return nil, domainerror.NewCardError(
			domainerror.ErrCodeInvalidCurrency,
			"currency must be IDR, THB or USD",
			err,
		)
	}

	card := entity.NewCard(name, input.Number, currency, input.Color)

	if err := uc.cardRepo.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	return &CreateCardOutput{Card: toCardOutput(card)}, nil
}
