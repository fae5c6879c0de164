// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cardledger/backend/internal/application/adapter"
	"github.com/cardledger/backend/internal/domain/entity"
	"github.com/cardledger/backend/internal/domain/valueobject"
	"github.com/cardledger/backend/internal/integration/persistence/model"
)

// openTestDB opens a fresh in-memory database with the full schema. Each
// test gets its own database, so nothing leaks between them.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&model.CardModel{},
		&model.TransactionModel{},
		&model.BudgetModel{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedCard(t *testing.T, db *gorm.DB, name string, currency valueobject.Currency) *entity.Card {
	t.Helper()

	card := entity.NewCard(name, "0000", currency, "#64748b")
	if err := NewCardRepository(db).Create(context.Background(), card); err != nil {
		t.Fatalf("failed to seed card: %v", err)
	}
	return card
}

func newIncome(t *testing.T, amount int64, date string, toCardID uuid.UUID) *entity.Transaction {
	t.Helper()
	return newTransaction(t, entity.TransactionTypeIncome, amount, date, entity.AssetTransfer, entity.CategorySalary, nil, &toCardID)
}

func newExpense(t *testing.T, amount int64, date string, fromCardID uuid.UUID) *entity.Transaction {
	t.Helper()
	return newTransaction(t, entity.TransactionTypeExpense, amount, date, entity.AssetCash, entity.CategoryFoodDrinks, &fromCardID, nil)
}

func newConvert(t *testing.T, amount int64, date string, fromCardID, toCardID uuid.UUID) *entity.Transaction {
	t.Helper()
	return newTransaction(t, entity.TransactionTypeConvert, amount, date, "", "", &fromCardID, &toCardID)
}

func newTransaction(t *testing.T, txnType entity.TransactionType, amount int64, date string, asset entity.Asset, category entity.Category, fromCardID, toCardID *uuid.UUID) *entity.Transaction {
	t.Helper()

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("bad test date %q: %v", date, err)
	}
	return entity.NewTransaction(txnType, decimal.NewFromInt(amount), day, asset, category, "", fromCardID, toCardID)
}

// insertTransaction appends a record without touching balances; the query
// repositories under test only read the log.
func insertTransaction(t *testing.T, db *gorm.DB, txn *entity.Transaction) {
	t.Helper()

	ctx := context.Background()
	err := NewLedgerStore(db).Atomically(ctx, func(ltx adapter.LedgerTx) error {
		return ltx.InsertTransaction(ctx, txn)
	})
	if err != nil {
		t.Fatalf("failed to insert transaction: %v", err)
	}
}
