// Package stats contains the aggregation use cases feeding the dashboards.
package stats

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
	"github.com/cardledger/backend/internal/domain/valueobject"
)

// TotalForInput represents the input for a period total.
type TotalForInput struct {
	Type      entity.TransactionType // income or expense only
	CardID    uuid.UUID              // entity.AllCardsID for all cards
	StartDate *time.Time
	EndDate   *time.Time
}

// TotalForOutput represents the output of a period total. Currency is set
// when the total is scoped to a single card; the all-cards total is a face
// amount across currencies and carries no currency tag.
type TotalForOutput struct {
	Amount    decimal.Decimal
	Currency  valueobject.Currency
	Formatted string
}

// TotalForUseCase sums income or expense transactions. Convert transactions
// never count: they move money between cards without earning or spending it.
type TotalForUseCase struct {
	statsRepo Repository
	cardRepo  adapter.CardRepository
}

// NewTotalForUseCase creates a new TotalForUseCase instance.
func NewTotalForUseCase(statsRepo Repository, cardRepo adapter.CardRepository) *TotalForUseCase {
	return &TotalForUseCase{
		statsRepo: statsRepo,
		cardRepo:  cardRepo,
	}
}

// Execute computes the total.
func (uc *TotalForUseCase) Execute(ctx context.Context, input TotalForInput) (*TotalForOutput, error) {
	if input.Type != entity.TransactionTypeIncome && input.Type != entity.TransactionTypeExpense {
		return nil, domainerror.NewStatsError(
			domainerror.ErrCodeInvalidTotalType,
			"totals are only defined for income and expense",
			domainerror.ErrInvalidTotalType,
		)
	}
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, domainerror.NewStatsError(
			domainerror.ErrCodeInvalidDateRange,
			"end date must not precede start date",
			domainerror.ErrInvalidDateRange,
		)
	}

	amount, err := uc.statsRepo.TotalByType(ctx, input.Type, input.CardID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to sum %s transactions: %w", input.Type, err)
	}

	output := &TotalForOutput{Amount: amount}
	if input.CardID != entity.AllCardsID {
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
		output.Currency = card.Currency
		output.Formatted = valueobject.NewMoney(amount, card.Currency).Format()
	}

	return output, nil
}
