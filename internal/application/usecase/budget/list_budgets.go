// Package budget contains the monthly budget use cases.
package budget

import (
	"context"
	"fmt"

	"github.com/cardledger/backend/internal/application/adapter"
)

// ListBudgetsOutput represents the output of listing budgets.
type ListBudgetsOutput struct {
	Budgets []*BudgetOutput
}

// ListBudgetsUseCase handles listing all budgets.
type ListBudgetsUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(budgetRepo adapter.BudgetRepository) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute retrieves all budgets, newest month first.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context) (*ListBudgetsOutput, error) {
	budgets, err := uc.budgetRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	outputs := make([]*BudgetOutput, len(budgets))
	for i, budget := range budgets {
		outputs[i] = toBudgetOutput(budget)
	}

	return &ListBudgetsOutput{Budgets: outputs}, nil
}
