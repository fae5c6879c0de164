// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardledger/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
//
// Seq is the table's integer primary key so the database assigns it on
// insert; it records insertion order and breaks ties between transactions
// sharing a date. The public identifier is the ID column. Year and Month
// are derived from Date at write time so the aggregation queries group on
// plain integer columns instead of dialect-specific date functions.
type TransactionModel struct {
	Seq        int64           `gorm:"primaryKey;autoIncrement"`
	ID         uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	Type       string          `gorm:"type:varchar(10);not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(19,2);not null"`
	Date       time.Time       `gorm:"type:date;not null;index"`
	Year       int             `gorm:"not null;index:idx_transactions_year_month"`
	Month      int             `gorm:"not null;index:idx_transactions_year_month"`
	Asset      string          `gorm:"type:varchar(10)"`
	Category   string          `gorm:"type:varchar(30);index"`
	Notes      string          `gorm:"type:text"`
	FromCardID *uuid.UUID      `gorm:"type:uuid;index"`
	ToCardID   *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:         m.ID,
		Type:       entity.TransactionType(m.Type),
		Amount:     m.Amount,
		Date:       m.Date,
		Asset:      entity.Asset(m.Asset),
		Category:   entity.Category(m.Category),
		Notes:      m.Notes,
		FromCardID: m.FromCardID,
		ToCardID:   m.ToCardID,
		Seq:        m.Seq,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	date := transaction.Date.UTC()

	return &TransactionModel{
		Seq:        transaction.Seq,
		ID:         transaction.ID,
		Type:       string(transaction.Type),
		Amount:     transaction.Amount,
		Date:       date,
		Year:       date.Year(),
		Month:      int(date.Month()),
		Asset:      string(transaction.Asset),
		Category:   string(transaction.Category),
		Notes:      transaction.Notes,
		FromCardID: transaction.FromCardID,
		ToCardID:   transaction.ToCardID,
		CreatedAt:  transaction.CreatedAt,
		UpdatedAt:  transaction.UpdatedAt,
	}
}
