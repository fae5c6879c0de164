// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/cardledger/backend/internal/application/usecase/budget"
)

// CreateBudgetRequest represents the request body for budget creation.
// An absent card_id scopes the budget to all cards.
type CreateBudgetRequest struct {
	CardID *string  `json:"card_id,omitempty"`
	Month  string   `json:"month" binding:"required"`
	Amount *float64 `json:"amount" binding:"required"`
}

// UpdateBudgetRequest represents the request body for budget update.
type UpdateBudgetRequest struct {
	Month  *string  `json:"month,omitempty"`
	Amount *float64 `json:"amount,omitempty"`
}

// BudgetResponse represents a single budget in API responses.
type BudgetResponse struct {
	ID        string    `json:"id"`
	CardID    *string   `json:"card_id,omitempty"`
	Month     string    `json:"month"`
	Amount    string    `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BudgetListResponse represents the response for listing budgets.
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// ToBudgetResponse converts a BudgetOutput to a BudgetResponse DTO.
func ToBudgetResponse(output *budget.BudgetOutput) BudgetResponse {
	response := BudgetResponse{
		ID:        output.ID.String(),
		Month:     output.Month,
		Amount:    output.Amount.String(),
		CreatedAt: output.CreatedAt,
		UpdatedAt: output.UpdatedAt,
	}
	if output.CardID != nil {
		cardID := output.CardID.String()
		response.CardID = &cardID
	}
	return response
}

// ToBudgetListResponse converts a ListBudgetsOutput to its DTO.
func ToBudgetListResponse(output *budget.ListBudgetsOutput) BudgetListResponse {
	budgets := make([]BudgetResponse, len(output.Budgets))
	for i, b := range output.Budgets {
		budgets[i] = ToBudgetResponse(b)
	}
	return BudgetListResponse{Budgets: budgets}
}
