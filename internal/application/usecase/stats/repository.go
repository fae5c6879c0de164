// Package stats contains the aggregation use cases feeding the dashboards.
package stats

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardledger/backend/internal/domain/entity"
)

// MonthlyTotal is the raw income/expense sum for one calendar month.
type MonthlyTotal struct {
	Month   time.Month
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// YearlyTotal is the raw income/expense sum for one calendar year.
type YearlyTotal struct {
	Year    int
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// CategoryTotal is the raw sum for one category.
type CategoryTotal struct {
	Category entity.Category
	Amount   decimal.Decimal
	Count    int
}

// Repository defines the aggregation queries the stats use cases need.
// Every query treats entity.AllCardsID as "across all cards" and excludes
// convert transactions: they are transfers, not P&L events.
type Repository interface {
	// MonthlyTotals returns sums per month for the given year; months with
	// no transactions are simply absent.
	MonthlyTotals(ctx context.Context, cardID uuid.UUID, year int) ([]MonthlyTotal, error)

	// YearlyTotals returns sums per calendar year present in the data,
	// ascending.
	YearlyTotals(ctx context.Context, cardID uuid.UUID) ([]YearlyTotal, error)

	// TotalByType sums income or expense transactions, optionally bounded
	// by an inclusive date range.
	TotalByType(ctx context.Context, transactionType entity.TransactionType, cardID uuid.UUID, startDate, endDate *time.Time) (decimal.Decimal, error)

	// CategoryTotals sums income or expense transactions per category,
	// optionally bounded by an inclusive date range, largest first.
	CategoryTotals(ctx context.Context, transactionType entity.TransactionType, cardID uuid.UUID, startDate, endDate *time.Time) ([]CategoryTotal, error)

	// ActiveMonthCount counts distinct calendar months holding at least
	// one matching transaction.
	ActiveMonthCount(ctx context.Context, transactionType entity.TransactionType, cardID uuid.UUID) (int, error)
}
