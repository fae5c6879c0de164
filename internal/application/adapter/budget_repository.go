// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/cardledger/backend/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Create creates a new budget in the database.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByID retrieves a budget by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)

	// FindAll retrieves every budget, newest month first.
	FindAll(ctx context.Context) ([]*entity.Budget, error)

	// FindByCardAndMonth retrieves the budget for a card (nil for the
	// all-cards budget) and a "YYYY-MM" month, or
	// domainerror.ErrBudgetNotFound when none exists.
	FindByCardAndMonth(ctx context.Context, cardID *uuid.UUID, month string) (*entity.Budget, error)

	// FindByCardAndYear retrieves all budgets for a card within a calendar year.
	FindByCardAndYear(ctx context.Context, cardID *uuid.UUID, year int) ([]*entity.Budget, error)

	// Update updates an existing budget.
	Update(ctx context.Context, budget *entity.Budget) error

	// Delete removes a budget.
	Delete(ctx context.Context, id uuid.UUID) error
}
