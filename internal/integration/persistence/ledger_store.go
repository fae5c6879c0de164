// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cardledger/backend/internal/application/adapter"
	"github.com/cardledger/backend/internal/domain/entity"
	domainerror "github.com/cardledger/backend/internal/domain/error"
	"github.com/cardledger/backend/internal/integration/persistence/model"
)

// ledgerStore implements the adapter.LedgerStore interface on gorm.
type ledgerStore struct {
	db *gorm.DB
}

// NewLedgerStore creates a new ledger store instance.
func NewLedgerStore(db *gorm.DB) adapter.LedgerStore {
	return &ledgerStore{
		db: db,
	}
}

// Atomically runs fn inside one database transaction.
func (s *ledgerStore) Atomically(ctx context.Context, fn func(tx adapter.LedgerTx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerTx{db: tx})
	})
}

// ledgerTx implements adapter.LedgerTx on an open gorm transaction.
type ledgerTx struct {
	db *gorm.DB
}

// Card loads a card inside the transaction.
func (t *ledgerTx) Card(ctx context.Context, id uuid.UUID) (*entity.Card, error) {
	var cardModel model.CardModel
	result := t.db.WithContext(ctx).Where("id = ?", id).First(&cardModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCardNotFound
		}
		return nil, result.Error
	}
	return cardModel.ToEntity(), nil
}

// SaveCardBalance persists the card's balance under optimistic concurrency.
// The update is guarded by the version the card was read at; a concurrent
// writer that committed first leaves zero rows matching, which surfaces as
// domainerror.ErrConcurrencyConflict for the caller to retry.
func (t *ledgerTx) SaveCardBalance(ctx context.Context, card *entity.Card) error {
	result := t.db.WithContext(ctx).
		Model(&model.CardModel{}).
		Where("id = ? AND version = ?", card.ID, card.Version).
		Updates(map[string]interface{}{
			"balance":    card.Balance,
			"version":    card.Version + 1,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrConcurrencyConflict
	}
	card.Version++
	return nil
}

// InsertTransaction appends a record to the transaction log. The database
// assigns the sequence number; it is copied back onto the entity.
func (t *ledgerTx) InsertTransaction(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	transactionModel.Seq = 0
	result := t.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	transaction.Seq = transactionModel.Seq
	return nil
}

// UpdateTransaction rewrites an existing record in place, keeping its
// sequence number.
func (t *ledgerTx) UpdateTransaction(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := t.db.WithContext(ctx).Save(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// DeleteTransaction removes a record from the log.
func (t *ledgerTx) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	result := t.db.WithContext(ctx).Delete(&model.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// TransactionByID loads a record inside the transaction.
func (t *ledgerTx) TransactionByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := t.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// SumEffects recomputes a card's balance from the full transaction history:
// amounts credited to the card minus amounts debited from it.
func (t *ledgerTx) SumEffects(ctx context.Context, cardID uuid.UUID) (decimal.Decimal, error) {
	var credits struct {
		Total decimal.Decimal `gorm:"column:total"`
	}
	if err := t.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("to_card_id = ?", cardID).
		Scan(&credits).Error; err != nil {
		return decimal.Zero, err
	}

	var debits struct {
		Total decimal.Decimal `gorm:"column:total"`
	}
	if err := t.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("from_card_id = ?", cardID).
		Scan(&debits).Error; err != nil {
		return decimal.Zero, err
	}

	return credits.Total.Sub(debits.Total), nil
}
