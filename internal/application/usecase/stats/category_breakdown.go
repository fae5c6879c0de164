// Package stats contains the aggregation use cases feeding the dashboards.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardledger/backend/internal/domain/entity"
	domainerror "github.com/cardledger/backend/internal/domain/error"
)

// CategoryBreakdownInput represents the input for a category breakdown.
type CategoryBreakdownInput struct {
	Type      entity.TransactionType // income or expense only
	CardID    uuid.UUID              // entity.AllCardsID for all cards
	StartDate *time.Time
	EndDate   *time.Time
}

// CategoryBreakdownItem is one category's share of the total.
type CategoryBreakdownItem struct {
	Category         entity.Category
	Amount           decimal.Decimal
	Percentage       decimal.Decimal // 0..100, two decimal places
	TransactionCount int
}

// CategoryBreakdownOutput represents the output of a category breakdown.
type CategoryBreakdownOutput struct {
	Total      decimal.Decimal
	Categories []CategoryBreakdownItem
}

// CategoryBreakdownUseCase computes per-category sums with their share of
// the period total. An empty period yields 0% everywhere, never a division
// error.
type CategoryBreakdownUseCase struct {
	statsRepo Repository
}

// NewCategoryBreakdownUseCase creates a new CategoryBreakdownUseCase instance.
func NewCategoryBreakdownUseCase(statsRepo Repository) *CategoryBreakdownUseCase {
	return &CategoryBreakdownUseCase{
		statsRepo: statsRepo,
	}
}

// Execute computes the breakdown.
func (uc *CategoryBreakdownUseCase) Execute(ctx context.Context, input CategoryBreakdownInput) (*CategoryBreakdownOutput, error) {
	if input.Type != entity.TransactionTypeIncome && input.Type != entity.TransactionTypeExpense {
		return nil, domainerror.NewStatsError(
			domainerror.ErrCodeInvalidTotalType,
			"breakdowns are only defined for income and expense",
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

	totals, err := uc.statsRepo.CategoryTotals(ctx, input.Type, input.CardID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load category totals: %w", err)
	}

	total := decimal.Zero
	for _, categoryTotal := range totals {
		total = total.Add(categoryTotal.Amount)
	}

	categories := make([]CategoryBreakdownItem, len(totals))
	for i, categoryTotal := range totals {
		percentage := decimal.Zero
		if !total.IsZero() {
			percentage = categoryTotal.Amount.
				Mul(decimal.NewFromInt(100)).
				Div(total).
				Round(2)
		}
		categories[i] = CategoryBreakdownItem{
			Category:         categoryTotal.Category,
			Amount:           categoryTotal.Amount,
			Percentage:       percentage,
			TransactionCount: categoryTotal.Count,
		}
	}

	return &CategoryBreakdownOutput{Total: total, Categories: categories}, nil
}
