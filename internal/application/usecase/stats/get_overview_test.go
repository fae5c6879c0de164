// Package stats contains the aggregation use cases feeding the dashboards.
package stats

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cardledger/backend/internal/application/adapter"
	"github.com/cardledger/backend/internal/domain/entity"
)

// recordingCache is a map-backed SeriesCache counting reads and writes.
type recordingCache struct {
	entries map[string][]byte
	gets    int
	sets    int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{entries: make(map[string][]byte)}
}

func (c *recordingCache) Get(_ context.Context, key string) ([]byte, error) {
	c.gets++
	payload, ok := c.entries[key]
	if !ok {
		return nil, adapter.ErrCacheMiss
	}
	return payload, nil
}

func (c *recordingCache) Set(_ context.Context, key string, payload []byte, _ time.Duration) error {
	c.sets++
	c.entries[key] = payload
	return nil
}

func (c *recordingCache) Invalidate(context.Context) error {
	c.entries = make(map[string][]byte)
	return nil
}

func newOverviewUseCase(repo *fakeAggregateRepo, cache adapter.SeriesCache) *GetOverviewUseCase {
	uc := NewGetOverviewUseCase(
		NewMonthlySeriesUseCase(repo, nil),
		NewYearlySeriesUseCase(repo),
		NewTotalForUseCase(repo, &fakeCardRepo{}),
		NewAveragePerMonthUseCase(repo),
		cache,
	)
	uc.now = func() time.Time {
		return time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	}
	return uc
}

func TestGetOverview(t *testing.T) {
	ctx := context.Background()

	t.Run("composes series, totals and growth", func(t *testing.T) {
		repo := &fakeAggregateRepo{
			yearly:       []YearlyTotal{{Year: 2026, Income: decimal.NewFromInt(900), Expense: decimal.NewFromInt(400)}},
			activeMonths: 2,
			totalFn: func(transactionType entity.TransactionType, startDate, _ *time.Time) decimal.Decimal {
				// Lifetime average query passes no range.
				if startDate == nil {
					return decimal.NewFromInt(500)
				}
				current := startDate.Month() == time.August
				switch {
				case transactionType == entity.TransactionTypeIncome && current:
					return decimal.NewFromInt(200)
				case transactionType == entity.TransactionTypeIncome:
					return decimal.NewFromInt(100)
				case current:
					return decimal.NewFromInt(50)
				default:
					return decimal.NewFromInt(100)
				}
			},
		}
		uc := newOverviewUseCase(repo, nil)

		output, err := uc.Execute(ctx, GetOverviewInput{CardID: entity.AllCardsID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Year != 2026 {
			t.Errorf("expected the current year 2026, got %d", output.Year)
		}
		if len(output.Monthly) != 12 {
			t.Errorf("expected 12 monthly buckets, got %d", len(output.Monthly))
		}
		if len(output.Yearly) != 1 {
			t.Errorf("expected 1 yearly bucket, got %d", len(output.Yearly))
		}
		if !output.MonthIncome.Equal(decimal.NewFromInt(200)) || !output.MonthExpense.Equal(decimal.NewFromInt(50)) {
			t.Errorf("unexpected month totals: %s/%s", output.MonthIncome, output.MonthExpense)
		}
		if output.IncomeGrowth.String() != "100" {
			t.Errorf("expected income growth 100%%, got %s%%", output.IncomeGrowth)
		}
		if output.ExpenseGrowth.String() != "-50" {
			t.Errorf("expected expense growth -50%%, got %s%%", output.ExpenseGrowth)
		}
		if output.AverageExpense.String() != "250" {
			t.Errorf("expected average expense 250, got %s", output.AverageExpense)
		}
	})

	t.Run("serves the second read from cache", func(t *testing.T) {
		repo := &fakeAggregateRepo{
			totals: map[entity.TransactionType]decimal.Decimal{
				entity.TransactionTypeIncome: decimal.NewFromInt(300),
			},
		}
		cache := newRecordingCache()
		uc := newOverviewUseCase(repo, cache)

		first, err := uc.Execute(ctx, GetOverviewInput{CardID: entity.AllCardsID, Year: 2026})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cache.sets != 1 {
			t.Fatalf("expected 1 cache write, got %d", cache.sets)
		}

		// A changed total must not show until the cache is invalidated.
		repo.totals[entity.TransactionTypeIncome] = decimal.NewFromInt(999)

		second, err := uc.Execute(ctx, GetOverviewInput{CardID: entity.AllCardsID, Year: 2026})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !second.MonthIncome.Equal(first.MonthIncome) {
			t.Errorf("expected the cached payload, got income %s", second.MonthIncome)
		}
		if cache.sets != 1 {
			t.Errorf("expected no second cache write, got %d", cache.sets)
		}

		if err := cache.Invalidate(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		third, err := uc.Execute(ctx, GetOverviewInput{CardID: entity.AllCardsID, Year: 2026})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !third.MonthIncome.Equal(decimal.NewFromInt(999)) {
			t.Errorf("expected a fresh recomputation, got income %s", third.MonthIncome)
		}
	})
}
