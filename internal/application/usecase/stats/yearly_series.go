// Package stats contains the aggregation use cases feeding the dashboards.
package stats

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// YearlySeriesInput represents the input for a yearly chart series.
type YearlySeriesInput struct {
	CardID uuid.UUID // entity.AllCardsID for all cards
}

// YearlySeriesOutput represents the output of a yearly chart series: one
// bucket per calendar year present in the data, ascending.
type YearlySeriesOutput struct {
	Buckets []SeriesBucket
}

// YearlySeriesUseCase builds the yearly chart series.
type YearlySeriesUseCase struct {
	statsRepo Repository
}

// NewYearlySeriesUseCase creates a new YearlySeriesUseCase instance.
func NewYearlySeriesUseCase(statsRepo Repository) *YearlySeriesUseCase {
	return &YearlySeriesUseCase{
		statsRepo: statsRepo,
	}
}

// Execute builds the series.
func (uc *YearlySeriesUseCase) Execute(ctx context.Context, input YearlySeriesInput) (*YearlySeriesOutput, error) {
	totals, err := uc.statsRepo.YearlyTotals(ctx, input.CardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load yearly totals: %w", err)
	}

	buckets := make([]SeriesBucket, len(totals))
	for i, total := range totals {
		buckets[i] = SeriesBucket{
			Label:   YearLabel(total.Year),
			Income:  total.Income,
			Expense: total.Expense,
		}
	}

	return &YearlySeriesOutput{Buckets: buckets}, nil
}
