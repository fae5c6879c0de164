// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cardledger/backend/internal/application/usecase/stats"
	"github.com/cardledger/backend/internal/domain/entity"
	"github.com/cardledger/backend/internal/integration/persistence/model"
)

// statsRepository implements the stats.Repository interface.
//
// All queries group on the transactions table's year and month integer
// columns, which keeps the SQL identical across postgres and the sqlite
// databases the test suite runs on. Convert rows are excluded everywhere:
// a transfer between cards is not earning or spending.
type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new stats repository instance.
func NewStatsRepository(db *gorm.DB) stats.Repository {
	return &statsRepository{
		db: db,
	}
}

// scoped narrows a query to income/expense rows touching the card. Income
// anchors to the destination card, expense to the source card.
func (r *statsRepository) scoped(ctx context.Context, cardID uuid.UUID) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("type IN ?", []string{
			string(entity.TransactionTypeIncome),
			string(entity.TransactionTypeExpense),
		})
	if cardID != entity.AllCardsID {
		query = query.Where(
			"(type = ? AND to_card_id = ?) OR (type = ? AND from_card_id = ?)",
			string(entity.TransactionTypeIncome), cardID,
			string(entity.TransactionTypeExpense), cardID,
		)
	}
	return query
}

// scopedByType narrows a query to one transaction type touching the card.
func (r *statsRepository) scopedByType(ctx context.Context, transactionType entity.TransactionType, cardID uuid.UUID) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("type = ?", string(transactionType))
	if cardID != entity.AllCardsID {
		if transactionType == entity.TransactionTypeIncome {
			query = query.Where("to_card_id = ?", cardID)
		} else {
			query = query.Where("from_card_id = ?", cardID)
		}
	}
	return query
}

// MonthlyTotals returns income/expense sums per month for the given year.
func (r *statsRepository) MonthlyTotals(ctx context.Context, cardID uuid.UUID, year int) ([]stats.MonthlyTotal, error) {
	var results []struct {
		Month   int             `gorm:"column:month"`
		Income  decimal.Decimal `gorm:"column:income"`
		Expense decimal.Decimal `gorm:"column:expense"`
	}

	err := r.scoped(ctx, cardID).
		Select(
			"month, "+
				"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) as income, "+
				"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) as expense",
			string(entity.TransactionTypeIncome),
			string(entity.TransactionTypeExpense),
		).
		Where("year = ?", year).
		Group("month").
		Order("month ASC").
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly totals: %w", err)
	}

	totals := make([]stats.MonthlyTotal, len(results))
	for i, res := range results {
		totals[i] = stats.MonthlyTotal{
			Month:   time.Month(res.Month),
			Income:  res.Income,
			Expense: res.Expense,
		}
	}
	return totals, nil
}

// YearlyTotals returns income/expense sums per calendar year, ascending.
func (r *statsRepository) YearlyTotals(ctx context.Context, cardID uuid.UUID) ([]stats.YearlyTotal, error) {
	var results []struct {
		Year    int             `gorm:"column:year"`
		Income  decimal.Decimal `gorm:"column:income"`
		Expense decimal.Decimal `gorm:"column:expense"`
	}

	err := r.scoped(ctx, cardID).
		Select(
			"year, "+
				"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) as income, "+
				"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) as expense",
			string(entity.TransactionTypeIncome),
			string(entity.TransactionTypeExpense),
		).
		Group("year").
		Order("year ASC").
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get yearly totals: %w", err)
	}

	totals := make([]stats.YearlyTotal, len(results))
	for i, res := range results {
		totals[i] = stats.YearlyTotal{
			Year:    res.Year,
			Income:  res.Income,
			Expense: res.Expense,
		}
	}
	return totals, nil
}

// TotalByType sums one transaction type, optionally bounded by a date range.
func (r *statsRepository) TotalByType(ctx context.Context, transactionType entity.TransactionType, cardID uuid.UUID, startDate, endDate *time.Time) (decimal.Decimal, error) {
	query := r.scopedByType(ctx, transactionType, cardID)
	if startDate != nil {
		query = query.Where("date >= ?", startDate)
	}
	if endDate != nil {
		query = query.Where("date <= ?", endDate)
	}

	var result struct {
		Total decimal.Decimal `gorm:"column:total"`
	}
	if err := query.Select("COALESCE(SUM(amount), 0) as total").Scan(&result).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s transactions: %w", transactionType, err)
	}
	return result.Total, nil
}

// CategoryTotals sums one transaction type per category, largest first.
func (r *statsRepository) CategoryTotals(ctx context.Context, transactionType entity.TransactionType, cardID uuid.UUID, startDate, endDate *time.Time) ([]stats.CategoryTotal, error) {
	query := r.scopedByType(ctx, transactionType, cardID)
	if startDate != nil {
		query = query.Where("date >= ?", startDate)
	}
	if endDate != nil {
		query = query.Where("date <= ?", endDate)
	}

	var results []struct {
		Category string          `gorm:"column:category"`
		Total    decimal.Decimal `gorm:"column:total"`
		Count    int             `gorm:"column:count"`
	}
	err := query.
		Select("category, COALESCE(SUM(amount), 0) as total, COUNT(*) as count").
		Group("category").
		Order("total DESC").
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get category totals: %w", err)
	}

	totals := make([]stats.CategoryTotal, len(results))
	for i, res := range results {
		totals[i] = stats.CategoryTotal{
			Category: entity.Category(res.Category),
			Amount:   res.Total,
			Count:    res.Count,
		}
	}
	return totals, nil
}

// ActiveMonthCount counts distinct calendar months holding at least one
// matching transaction.
func (r *statsRepository) ActiveMonthCount(ctx context.Context, transactionType entity.TransactionType, cardID uuid.UUID) (int, error) {
	var months []struct {
		Year  int `gorm:"column:year"`
		Month int `gorm:"column:month"`
	}
	err := r.scopedByType(ctx, transactionType, cardID).
		Distinct("year", "month").
		Find(&months).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count active months: %w", err)
	}
	return len(months), nil
}
