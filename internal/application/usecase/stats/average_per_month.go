// Package stats contains the aggregation use cases feeding the dashboards.
package stats

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardledger/backend/internal/domain/entity"
	domainerror "github.com/cardledger/backend/internal/domain/error"
)

// AveragePerMonthInput represents the input for a monthly average.
type AveragePerMonthInput struct {
	Type   entity.TransactionType // income or expense only
	CardID uuid.UUID              // entity.AllCardsID for all cards
}

// AveragePerMonthOutput represents the output of a monthly average.
type AveragePerMonthOutput struct {
	Average    decimal.Decimal
	MonthCount int
	Total      decimal.Decimal
}

// AveragePerMonthUseCase computes the average amount per active month.
// The denominator is the number of distinct months holding at least one
// matching transaction — idle months don't dilute the figure. With no
// matching transactions the average is zero.
type AveragePerMonthUseCase struct {
	statsRepo Repository
}

// NewAveragePerMonthUseCase creates a new AveragePerMonthUseCase instance.
func NewAveragePerMonthUseCase(statsRepo Repository) *AveragePerMonthUseCase {
	return &AveragePerMonthUseCase{
		statsRepo: statsRepo,
	}
}

// Execute computes the average.
func (uc *AveragePerMonthUseCase) Execute(ctx context.Context, input AveragePerMonthInput) (*AveragePerMonthOutput, error) {
	if input.Type != entity.TransactionTypeIncome && input.Type != entity.TransactionTypeExpense {
		return nil, domainerror.NewStatsError(
			domainerror.ErrCodeInvalidTotalType,
			"averages are only defined for income and expense",
			domainerror.ErrInvalidTotalType,
		)
	}

	total, err := uc.statsRepo.TotalByType(ctx, input.Type, input.CardID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to sum %s transactions: %w", input.Type, err)
	}

	months, err := uc.statsRepo.ActiveMonthCount(ctx, input.Type, input.CardID)
	if err != nil {
		return nil, fmt.Errorf("failed to count active months: %w", err)
	}

	average := decimal.Zero
	if months > 0 {
		average = total.Div(decimal.NewFromInt(int64(months))).Round(2)
	}

	return &AveragePerMonthOutput{
		Average:    average,
		MonthCount: months,
		Total:      total,
	}, nil
}
