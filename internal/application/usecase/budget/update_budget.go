// Package budget contains the monthly budget use cases.
package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardledger/backend/internal/application/adapter"
	domainerror "github.com/cardledger/backend/internal/domain/error"
)

// UpdateBudgetInput represents the input for updating a budget. Nil fields
// keep their current value; the card scope is immutable.
type UpdateBudgetInput struct {
	ID     uuid.UUID
	Month  *string
	Amount *decimal.Decimal
}

// UpdateBudgetUseCase handles budget updates.
type UpdateBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(budgetRepo adapter.BudgetRepository) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute updates an existing budget.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*BudgetOutput, error) {
	budget, err := uc.budgetRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetNotFound,
				"budget not found",
				domainerror.ErrBudgetNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}

	if input.Month != nil && *input.Month != budget.Month {
		if err := validateMonth(*input.Month); err != nil {
			return nil, err
		}
		if _, err := uc.budgetRepo.FindByCardAndMonth(ctx, budget.CardID, *input.Month); err == nil {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeDuplicateBudget,
				fmt.Sprintf("a budget for %s already exists", *input.Month),
				domainerror.ErrDuplicateBudget,
			)
		} else if !errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, fmt.Errorf("failed to check for existing budget: %w", err)
		}
		budget.Month = *input.Month
	}

	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeInvalidBudgetAmount,
				"amount must be positive",
				domainerror.ErrInvalidBudgetAmount,
			)
		}
		budget.Amount = *input.Amount
	}

	budget.UpdatedAt = time.Now().UTC()
	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	return toBudgetOutput(budget), nil
}
