// Package stats contains the aggregation use cases feeding the dashboards.
package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/cardledger/backend/internal/application/adapter"
	"github.com/cardledger/backend/internal/domain/entity"
)

// overviewCacheTTL bounds how long a cached overview may serve; every
// ledger write invalidates the cache anyway, so this is a safety net.
const overviewCacheTTL = 10 * time.Minute

// GetOverviewInput represents the input for the dashboard overview.
type GetOverviewInput struct {
	CardID uuid.UUID // entity.AllCardsID for all cards
	Year   int       // 0 means the current year
}

// GetOverviewOutput is the full dashboard payload: both chart series plus
// the current month's totals and their growth against the prior month.
type GetOverviewOutput struct {
	CardID         uuid.UUID       `json:"card_id"`
	Year           int             `json:"year"`
	Monthly        []SeriesBucket  `json:"monthly"`
	Yearly         []SeriesBucket  `json:"yearly"`
	MonthIncome    decimal.Decimal `json:"month_income"`
	MonthExpense   decimal.Decimal `json:"month_expense"`
	IncomeGrowth   decimal.Decimal `json:"income_growth"`
	ExpenseGrowth  decimal.Decimal `json:"expense_growth"`
	AverageExpense decimal.Decimal `json:"average_expense"`
}

// GetOverviewUseCase composes the dashboard overview. The independent
// aggregations fan out concurrently and the finished payload is cached
// until the next ledger write.
type GetOverviewUseCase struct {
	monthlySeries   *MonthlySeriesUseCase
	yearlySeries    *YearlySeriesUseCase
	totalFor        *TotalForUseCase
	averagePerMonth *AveragePerMonthUseCase
	cache           adapter.SeriesCache
	now             func() time.Time
}

// NewGetOverviewUseCase creates a new GetOverviewUseCase instance.
func NewGetOverviewUseCase(
	monthlySeries *MonthlySeriesUseCase,
	yearlySeries *YearlySeriesUseCase,
	totalFor *TotalForUseCase,
	averagePerMonth *AveragePerMonthUseCase,
	cache adapter.SeriesCache,
) *GetOverviewUseCase {
	return &GetOverviewUseCase{
		monthlySeries:   monthlySeries,
		yearlySeries:    yearlySeries,
		totalFor:        totalFor,
		averagePerMonth: averagePerMonth,
		cache:           cache,
		now:             time.Now,
	}
}

// Execute builds (or serves from cache) the overview.
func (uc *GetOverviewUseCase) Execute(ctx context.Context, input GetOverviewInput) (*GetOverviewOutput, error) {
	now := uc.now().UTC()
	year := input.Year
	if year == 0 {
		year = now.Year()
	}

	cacheKey := fmt.Sprintf("series:overview:%s:%d", input.CardID, year)
	if uc.cache != nil {
		if payload, err := uc.cache.Get(ctx, cacheKey); err == nil {
			var cached GetOverviewOutput
			if err := json.Unmarshal(payload, &cached); err == nil {
				return &cached, nil
			}
		} else if !errors.Is(err, adapter.ErrCacheMiss) {
			slog.Warn("Series cache read failed", "key", cacheKey, "error", err)
		}
	}

	monthStart, monthEnd := MonthBounds(now)
	priorStart, priorEnd := MonthBounds(PreviousMonth(now))

	var (
		monthly      *MonthlySeriesOutput
		yearly       *YearlySeriesOutput
		monthIncome  decimal.Decimal
		monthExpense decimal.Decimal
		priorIncome  decimal.Decimal
		priorExpense decimal.Decimal
		average      *AveragePerMonthOutput
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		monthly, err = uc.monthlySeries.Execute(groupCtx, MonthlySeriesInput{CardID: input.CardID, Year: year})
		return err
	})
	group.Go(func() error {
		var err error
		yearly, err = uc.yearlySeries.Execute(groupCtx, YearlySeriesInput{CardID: input.CardID})
		return err
	})
	group.Go(func() error {
		var err error
		monthIncome, err = uc.periodTotal(groupCtx, entity.TransactionTypeIncome, input.CardID, monthStart, monthEnd)
		return err
	})
	group.Go(func() error {
		var err error
		monthExpense, err = uc.periodTotal(groupCtx, entity.TransactionTypeExpense, input.CardID, monthStart, monthEnd)
		return err
	})
	group.Go(func() error {
		var err error
		priorIncome, err = uc.periodTotal(groupCtx, entity.TransactionTypeIncome, input.CardID, priorStart, priorEnd)
		return err
	})
	group.Go(func() error {
		var err error
		priorExpense, err = uc.periodTotal(groupCtx, entity.TransactionTypeExpense, input.CardID, priorStart, priorEnd)
		return err
	})
	group.Go(func() error {
		var err error
		average, err = uc.averagePerMonth.Execute(groupCtx, AveragePerMonthInput{
			Type:   entity.TransactionTypeExpense,
			CardID: input.CardID,
		})
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build overview: %w", err)
	}

	output := &GetOverviewOutput{
		CardID:         input.CardID,
		Year:           year,
		Monthly:        monthly.Buckets,
		Yearly:         yearly.Buckets,
		MonthIncome:    monthIncome,
		MonthExpense:   monthExpense,
		IncomeGrowth:   GrowthRate(monthIncome, priorIncome),
		ExpenseGrowth:  GrowthRate(monthExpense, priorExpense),
		AverageExpense: average.Average,
	}

	if uc.cache != nil {
		if payload, err := json.Marshal(output); err == nil {
			if err := uc.cache.Set(ctx, cacheKey, payload, overviewCacheTTL); err != nil {
				slog.Warn("Series cache write failed", "key", cacheKey, "error", err)
			}
		}
	}

	return output, nil
}

// periodTotal sums one type within an inclusive date range.
func (uc *GetOverviewUseCase) periodTotal(ctx context.Context, transactionType entity.TransactionType, cardID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	total, err := uc.totalFor.Execute(ctx, TotalForInput{
		Type:      transactionType,
		CardID:    cardID,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return decimal.Zero, err
	}
	return total.Amount, nil
}
