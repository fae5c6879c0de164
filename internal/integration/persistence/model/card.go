// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardledger/backend/internal/domain/entity"
	"github.com/cardledger/backend/internal/domain/valueobject"
)

// CardModel represents the cards table in the database.
type CardModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"type:varchar(100);not null"`
	Number    string          `gorm:"type:varchar(30)"`
	Currency  string          `gorm:"type:varchar(3);not null"`
	Color     string          `gorm:"type:varchar(20)"`
	Balance   decimal.Decimal `gorm:"type:decimal(19,2);not null"`
	Version   int64           `gorm:"not null;default:0"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the CardModel.
func (CardModel) TableName() string {
	return "cards"
}

// ToEntity converts a CardModel to a domain Card entity.
func (m *CardModel) ToEntity() *entity.Card {
	return &entity.Card{
		ID:        m.ID,
		Name:      m.Name,
		Number:    m.Number,
		Currency:  valueobject.Currency(m.Currency),
		Color:     m.Color,
		Balance:   m.Balance,
		Version:   m.Version,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// CardFromEntity creates a CardModel from a domain Card entity.
func CardFromEntity(card *entity.Card) *CardModel {
	return &CardModel{
		ID:        card.ID,
		Name:      card.Name,
		Number:    card.Number,
		Currency:  string(card.Currency),
		Color:     card.Color,
		Balance:   card.Balance,
		Version:   card.Version,
		CreatedAt: card.CreatedAt,
		UpdatedAt: card.UpdatedAt,
	}
}
