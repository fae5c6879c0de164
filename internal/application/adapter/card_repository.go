// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/cardledger/backend/internal/domain/entity"
)

// CardRepository defines the interface for card persistence operations.
type CardRepository interface {
	// Create creates a new card in the database.
	Create(ctx context.Context, card *entity.Card) error

	// FindByID retrieves a card by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Card, error)

	// FindAll retrieves every card, ordered by creation time.
	FindAll(ctx context.Context) ([]*entity.Card, error)

	// Update persists field edits (name, number, color). Balance changes
	// never go through here; they belong to the ledger store.
	Update(ctx context.Context, card *entity.Card) error

	// Delete removes a card. Callers must check for referencing
	// transactions first; deletion is blocked while any exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
