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
)

// MonthlySeriesInput represents the input for a monthly chart series.
type MonthlySeriesInput struct {
	CardID uuid.UUID // entity.AllCardsID for all cards
	Year   int
}

// SeriesBucket is one point of a chart series: a period label with its
// income and expense sums, plus the month's budget when one exists.
type SeriesBucket struct {
	Label   string
	Income  decimal.Decimal
	Expense decimal.Decimal
	Budget  *decimal.Decimal
}

// MonthlySeriesOutput represents the output of a monthly chart series.
type MonthlySeriesOutput struct {
	Year    int
	Buckets []SeriesBucket
}

// MonthlySeriesUseCase builds the 12-bucket monthly series for one year.
// Every month is present; months without transactions hold zeros.
type MonthlySeriesUseCase struct {
	statsRepo  Repository
	budgetRepo adapter.BudgetRepository
}

// NewMonthlySeriesUseCase creates a new MonthlySeriesUseCase instance.
func NewMonthlySeriesUseCase(statsRepo Repository, budgetRepo adapter.BudgetRepository) *MonthlySeriesUseCase {
	return &MonthlySeriesUseCase{
		statsRepo:  statsRepo,
		budgetRepo: budgetRepo,
	}
}

// Execute builds the series.
func (uc *MonthlySeriesUseCase) Execute(ctx context.Context, input MonthlySeriesInput) (*MonthlySeriesOutput, error) {
	if input.Year < 1 || input.Year > 9999 {
		return nil, domainerror.NewStatsError(
			domainerror.ErrCodeInvalidYear,
			"year must be a four-digit calendar year",
			domainerror.ErrInvalidYear,
		)
	}

	totals, err := uc.statsRepo.MonthlyTotals(ctx, input.CardID, input.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly totals: %w", err)
	}

	byMonth := make(map[time.Month]MonthlyTotal, len(totals))
	for _, total := range totals {
		byMonth[total.Month] = total
	}

	budgets, err := uc.monthBudgets(ctx, input.CardID, input.Year)
	if err != nil {
		return nil, err
	}

	buckets := make([]SeriesBucket, 0, 12)
	for month := time.January; month <= time.December; month++ {
		bucket := SeriesBucket{
			Label:   MonthLabel(month),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
		if total, ok := byMonth[month]; ok {
			bucket.Income = total.Income
			bucket.Expense = total.Expense
		}
		if budget, ok := budgets[MonthKey(input.Year, month)]; ok {
			bucket.Budget = &budget
		}
		buckets = append(buckets, bucket)
	}

	return &MonthlySeriesOutput{Year: input.Year, Buckets: buckets}, nil
}

// monthBudgets loads the year's budgets for the card keyed by "YYYY-MM".
func (uc *MonthlySeriesUseCase) monthBudgets(ctx context.Context, cardID uuid.UUID, year int) (map[string]decimal.Decimal, error) {
	if uc.budgetRepo == nil {
		return nil, nil
	}

	var budgetCardID *uuid.UUID
	if cardID != entity.AllCardsID {
		budgetCardID = &cardID
	}

	budgets, err := uc.budgetRepo.FindByCardAndYear(ctx, budgetCardID, year)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}

	byMonth := make(map[string]decimal.Decimal, len(budgets))
	for _, budget := range budgets {
		byMonth[budget.Month] = budget.Amount
	}
	return byMonth, nil
}
