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
	"github.com/cardledger/backend/internal/domain/entity"
	domainerror "github.com/cardledger/backend/internal/domain/error"
)

// MonthLayout is the wire format for budget months.
const MonthLayout = "2006-01"

// CreateBudgetInput represents the input for creating a budget.
type CreateBudgetInput struct {
	CardID *uuid.UUID // nil means all cards
	Month  string     // "YYYY-MM"
	Amount decimal.Decimal
}

// BudgetOutput represents a budget in use case outputs.
type BudgetOutput struct {
	ID        uuid.UUID
	CardID    *uuid.UUID
	Month     string
	Amount    decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

func toBudgetOutput(budget *entity.Budget) *BudgetOutput {
	return &BudgetOutput{
		ID:        budget.ID,
		CardID:    budget.CardID,
		Month:     budget.Month,
		Amount:    budget.Amount,
		CreatedAt: budget.CreatedAt,
		UpdatedAt: budget.UpdatedAt,
	}
}

// validateMonth checks the "YYYY-MM" format.
func validateMonth(month string) error {
	if _, err := time.Parse(MonthLayout, month); err != nil {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetMonth,
			fmt.Sprintf("month must be in YYYY-MM format, got %q", month),
			domainerror.ErrInvalidBudgetMonth,
		)
	}
	return nil
}

// CreateBudgetUseCase handles budget creation. At most one budget exists per
// card and month; the all-cards budget counts as its own scope.
type CreateBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
	cardRepo   adapter.CardRepository
}

// NewCreateBudgetUseCase creates a new CreateBudgetUseCase instance.
func NewCreateBudgetUseCase(budgetRepo adapter.BudgetRepository, cardRepo adapter.CardRepository) *CreateBudgetUseCase {
	return &CreateBudgetUseCase{
		budgetRepo: budgetRepo,
		cardRepo:   cardRepo,
	}
}

// Execute creates a new budget.
func (uc *CreateBudgetUseCase) Execute(ctx context.Context, input CreateBudgetInput) (*BudgetOutput, error) {
	if err := validateMonth(input.Month); err != nil {
		return nil, err
	}
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"amount must be positive",
			domainerror.ErrInvalidBudgetAmount,
		)
	}

	if input.CardID != nil {
		if _, err := uc.cardRepo.FindByID(ctx, *input.CardID); err != nil {
			if errors.Is(err, domainerror.ErrCardNotFound) {
				return nil, domainerror.NewCardError(
					domainerror.ErrCodeCardNotFound,
					"card not found",
					domainerror.ErrCardNotFound,
				)
			}
			return nil, fmt.Errorf("failed to find card: %w", err)
		}
	}

	if _, err := uc.budgetRepo.FindByCardAndMonth(ctx, input.CardID, input.Month); err == nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeDuplicateBudget,
			fmt.Sprintf("a budget for %s already exists", input.Month),
			domainerror.ErrDuplicateBudget,
		)
	} else if !errors.Is(err, domainerror.ErrBudgetNotFound) {
		return nil, fmt.Errorf("failed to check for existing budget: %w", err)
	}

	budget := entity.NewBudget(input.CardID, input.Month, input.Amount)
	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	return toBudgetOutput(budget), nil
}
