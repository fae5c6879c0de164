// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cardledger/backend/internal/domain/entity"
	"github.com/cardledger/backend/internal/domain/valueobject"
)

func TestStatsRepositoryMonthlyTotals(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	card := seedCard(t, db, "Main", valueobject.CurrencyUSD)
	other := seedCard(t, db, "Other", valueobject.CurrencyTHB)
	repo := NewStatsRepository(db)

	insertTransaction(t, db, newIncome(t, 1000, "2026-03-01", card.ID))
	insertTransaction(t, db, newExpense(t, 400, "2026-03-15", card.ID))
	insertTransaction(t, db, newExpense(t, 250, "2026-08-02", card.ID))
	// Neither the transfer nor last year's income belongs in the series.
	insertTransaction(t, db, newConvert(t, 9999, "2026-03-20", card.ID, other.ID))
	insertTransaction(t, db, newIncome(t, 777, "2025-03-01", card.ID))

	totals, err := repo.MonthlyTotals(ctx, entity.AllCardsID, 2026)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected totals for 2 months, got %d", len(totals))
	}
	march := totals[0]
	if march.Month != time.March || !march.Income.Equal(decimal.NewFromInt(1000)) || !march.Expense.Equal(decimal.NewFromInt(400)) {
		t.Errorf("unexpected March totals: %+v", march)
	}
	august := totals[1]
	if august.Month != time.August || !august.Income.IsZero() || !august.Expense.Equal(decimal.NewFromInt(250)) {
		t.Errorf("unexpected August totals: %+v", august)
	}
}

func TestStatsRepositoryYearlyTotals(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	card := seedCard(t, db, "Main", valueobject.CurrencyUSD)
	repo := NewStatsRepository(db)

	insertTransaction(t, db, newIncome(t, 500, "2025-06-01", card.ID))
	insertTransaction(t, db, newIncome(t, 800, "2026-06-01", card.ID))
	insertTransaction(t, db, newExpense(t, 100, "2026-06-02", card.ID))

	totals, err := repo.YearlyTotals(ctx, entity.AllCardsID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected 2 years, got %d", len(totals))
	}
	if totals[0].Year != 2025 || totals[1].Year != 2026 {
		t.Errorf("expected ascending years, got %d then %d", totals[0].Year, totals[1].Year)
	}
	if !totals[1].Income.Equal(decimal.NewFromInt(800)) || !totals[1].Expense.Equal(decimal.NewFromInt(100)) {
		t.Errorf("unexpected 2026 totals: %+v", totals[1])
	}
}

func TestStatsRepositoryTotalByType(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	earner := seedCard(t, db, "Earner", valueobject.CurrencyUSD)
	spender := seedCard(t, db, "Spender", valueobject.CurrencyUSD)
	repo := NewStatsRepository(db)

	insertTransaction(t, db, newIncome(t, 1000, "2026-08-01", earner.ID))
	insertTransaction(t, db, newIncome(t, 200, "2026-08-10", spender.ID))
	insertTransaction(t, db, newExpense(t, 300, "2026-08-15", spender.ID))

	t.Run("sums across all cards", func(t *testing.T) {
		total, err := repo.TotalByType(ctx, entity.TransactionTypeIncome, entity.AllCardsID, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !total.Equal(decimal.NewFromInt(1200)) {
			t.Errorf("expected 1200, got %s", total)
		}
	})

	t.Run("scopes income to the destination card", func(t *testing.T) {
		total, err := repo.TotalByType(ctx, entity.TransactionTypeIncome, earner.ID, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !total.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected 1000, got %s", total)
		}
	})

	t.Run("bounds by an inclusive date range", func(t *testing.T) {
		start := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
		total, err := repo.TotalByType(ctx, entity.TransactionTypeIncome, entity.AllCardsID, &start, &end)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !total.Equal(decimal.NewFromInt(200)) {
			t.Errorf("expected 200, got %s", total)
		}
	})
}

func TestStatsRepositoryCategoryTotals(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	card := seedCard(t, db, "Main", valueobject.CurrencyUSD)
	repo := NewStatsRepository(db)

	insertTransaction(t, db, newExpense(t, 100, "2026-08-01", card.ID))
	insertTransaction(t, db, newExpense(t, 50, "2026-08-02", card.ID))
	travel := newTransaction(t, entity.TransactionTypeExpense, 400, "2026-08-03", entity.AssetCash, entity.CategoryTravel, &card.ID, nil)
	insertTransaction(t, db, travel)

	totals, err := repo.CategoryTotals(ctx, entity.TransactionTypeExpense, entity.AllCardsID, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(totals))
	}
	if totals[0].Category != entity.CategoryTravel || !totals[0].Amount.Equal(decimal.NewFromInt(400)) {
		t.Errorf("expected travel first with 400, got %+v", totals[0])
	}
	if totals[1].Category != entity.CategoryFoodDrinks || totals[1].Count != 2 {
		t.Errorf("expected food_drinks with 2 transactions, got %+v", totals[1])
	}
}

func TestStatsRepositoryActiveMonthCount(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	card := seedCard(t, db, "Main", valueobject.CurrencyUSD)
	repo := NewStatsRepository(db)

	insertTransaction(t, db, newExpense(t, 10, "2026-01-05", card.ID))
	insertTransaction(t, db, newExpense(t, 20, "2026-01-25", card.ID))
	insertTransaction(t, db, newExpense(t, 30, "2026-04-01", card.ID))
	// Same month number in a different year counts separately.
	insertTransaction(t, db, newExpense(t, 40, "2025-01-01", card.ID))

	count, err := repo.ActiveMonthCount(ctx, entity.TransactionTypeExpense, entity.AllCardsID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 active months, got %d", count)
	}

	count, err = repo.ActiveMonthCount(ctx, entity.TransactionTypeIncome, entity.AllCardsID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no active income months, got %d", count)
	}
}
