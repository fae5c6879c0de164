// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardledger/backend/internal/application/adapter"
	"github.com/cardledger/backend/internal/domain/entity"
	domainerror "github.com/cardledger/backend/internal/domain/error"
	"github.com/cardledger/backend/internal/domain/valueobject"
)

func TestTransactionRepositoryFindByFilter(t *testing.T) {
	ctx := context.Background()

	t.Run("orders by date descending with insertion order breaking ties", func(t *testing.T) {
		db := openTestDB(t)
		card := seedCard(t, db, "Main", valueobject.CurrencyUSD)
		repo := NewTransactionRepository(db)

		older := newExpense(t, 10, "2026-08-01", card.ID)
		tieFirst := newExpense(t, 20, "2026-08-05", card.ID)
		tieSecond := newExpense(t, 30, "2026-08-05", card.ID)
		insertTransaction(t, db, older)
		insertTransaction(t, db, tieFirst)
		insertTransaction(t, db, tieSecond)

		page, err := repo.FindByFilter(ctx,
			adapter.TransactionFilter{CardID: entity.AllCardsID},
			adapter.TransactionPagination{Page: 1, PerPage: 15},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(page.Transactions) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(page.Transactions))
		}
		if page.Transactions[0].ID != tieFirst.ID || page.Transactions[1].ID != tieSecond.ID {
			t.Error("expected same-day transactions in the order they were recorded")
		}
		if page.Transactions[2].ID != older.ID {
			t.Error("expected the older transaction last")
		}
	})

	t.Run("computes the page envelope", func(t *testing.T) {
		db := openTestDB(t)
		card := seedCard(t, db, "Main", valueobject.CurrencyUSD)
		repo := NewTransactionRepository(db)

		for i := 0; i < 7; i++ {
			insertTransaction(t, db, newExpense(t, int64(i+1), "2026-08-10", card.ID))
		}

		page, err := repo.FindByFilter(ctx,
			adapter.TransactionFilter{CardID: entity.AllCardsID},
			adapter.TransactionPagination{Page: 2, PerPage: 3},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Total != 7 || page.CurrentPage != 2 || page.LastPage != 3 || page.PerPage != 3 {
			t.Errorf("unexpected envelope: %+v", page)
		}
		if page.From != 4 || page.To != 6 {
			t.Errorf("expected rows 4..6, got %d..%d", page.From, page.To)
		}
	})

	t.Run("an empty page reports zero bounds", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewTransactionRepository(db)

		page, err := repo.FindByFilter(ctx,
			adapter.TransactionFilter{CardID: entity.AllCardsID},
			adapter.TransactionPagination{Page: 1, PerPage: 15},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Total != 0 || page.LastPage != 1 {
			t.Errorf("unexpected envelope: %+v", page)
		}
		if page.From != 0 || page.To != 0 {
			t.Errorf("expected zero bounds, got %d..%d", page.From, page.To)
		}
	})

	t.Run("card scope matches either side of a convert", func(t *testing.T) {
		db := openTestDB(t)
		usd := seedCard(t, db, "USD", valueobject.CurrencyUSD)
		thb := seedCard(t, db, "THB", valueobject.CurrencyTHB)
		other := seedCard(t, db, "Other", valueobject.CurrencyIDR)
		repo := NewTransactionRepository(db)

		insertTransaction(t, db, newConvert(t, 100, "2026-08-01", usd.ID, thb.ID))
		insertTransaction(t, db, newExpense(t, 50, "2026-08-02", other.ID))

		page, err := repo.FindByFilter(ctx,
			adapter.TransactionFilter{CardID: thb.ID},
			adapter.TransactionPagination{Page: 1, PerPage: 15},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Total != 1 {
			t.Fatalf("expected 1 matching transaction, got %d", page.Total)
		}
		if page.Transactions[0].Type != entity.TransactionTypeConvert {
			t.Errorf("expected the convert, got %s", page.Transactions[0].Type)
		}
	})

	t.Run("type and date filters combine", func(t *testing.T) {
		db := openTestDB(t)
		card := seedCard(t, db, "Main", valueobject.CurrencyUSD)
		repo := NewTransactionRepository(db)

		insertTransaction(t, db, newIncome(t, 100, "2026-07-15", card.ID))
		insertTransaction(t, db, newExpense(t, 40, "2026-07-20", card.ID))
		insertTransaction(t, db, newExpense(t, 60, "2026-08-20", card.ID))

		expense := entity.TransactionTypeExpense
		start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
		page, err := repo.FindByFilter(ctx,
			adapter.TransactionFilter{CardID: entity.AllCardsID, Type: &expense, StartDate: &start, EndDate: &end},
			adapter.TransactionPagination{Page: 1, PerPage: 15},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if page.Total != 1 {
			t.Fatalf("expected 1 matching transaction, got %d", page.Total)
		}
		if !page.Transactions[0].Amount.Equal(decimal.NewFromInt(40)) {
			t.Errorf("expected the July expense, got %s", page.Transactions[0].Amount)
		}
	})
}

func TestTransactionRepositoryFindByID(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	card := seedCard(t, db, "Main", valueobject.CurrencyUSD)
	repo := NewTransactionRepository(db)

	txn := newIncome(t, 75, "2026-08-01", card.ID)
	insertTransaction(t, db, txn)

	found, err := repo.FindByID(ctx, txn.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != txn.ID || !found.Amount.Equal(decimal.NewFromInt(75)) {
		t.Errorf("unexpected transaction: %+v", found)
	}

	if _, err := repo.FindByID(ctx, uuid.New()); !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestTransactionRepositoryHasTransactions(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	used := seedCard(t, db, "Used", valueobject.CurrencyUSD)
	idle := seedCard(t, db, "Idle", valueobject.CurrencyUSD)
	repo := NewTransactionRepository(db)

	insertTransaction(t, db, newIncome(t, 10, "2026-08-01", used.ID))

	has, err := repo.HasTransactions(ctx, used.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !has {
		t.Error("expected the used card to report transactions")
	}

	has, err = repo.HasTransactions(ctx, idle.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if has {
		t.Error("expected the idle card to report none")
	}
}

func TestTransactionRepositoryTotalsByCard(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	usd := seedCard(t, db, "USD", valueobject.CurrencyUSD)
	thb := seedCard(t, db, "THB", valueobject.CurrencyTHB)
	repo := NewTransactionRepository(db)

	insertTransaction(t, db, newIncome(t, 1000, "2026-07-01", usd.ID))
	insertTransaction(t, db, newExpense(t, 300, "2026-07-05", usd.ID))
	// A transfer must count on neither side.
	insertTransaction(t, db, newConvert(t, 500, "2026-07-10", usd.ID, thb.ID))

	totals, err := repo.TotalsByCard(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	usdTotals := totals[usd.ID]
	if !usdTotals.Income.Equal(decimal.NewFromInt(1000)) || !usdTotals.Expense.Equal(decimal.NewFromInt(300)) {
		t.Errorf("unexpected USD totals: %+v", usdTotals)
	}
	if thbTotals, ok := totals[thb.ID]; ok {
		if !thbTotals.Income.IsZero() || !thbTotals.Expense.IsZero() {
			t.Errorf("expected the convert to count nowhere, got %+v", thbTotals)
		}
	}
}
