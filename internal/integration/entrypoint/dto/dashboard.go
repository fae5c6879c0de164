// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/cardledger/backend/internal/application/usecase/stats"
)

// SeriesBucketResponse represents one chart bucket in API responses.
type SeriesBucketResponse struct {
	Label   string  `json:"label"`
	Income  string  `json:"income"`
	Expense string  `json:"expense"`
	Budget  *string `json:"budget,omitempty"`
}

// OverviewResponse represents the dashboard overview payload.
type OverviewResponse struct {
	CardID         string                 `json:"card_id"`
	Year           int                    `json:"year"`
	Monthly        []SeriesBucketResponse `json:"monthly"`
	Yearly         []SeriesBucketResponse `json:"yearly"`
	MonthIncome    string                 `json:"month_income"`
	MonthExpense   string                 `json:"month_expense"`
	IncomeGrowth   string                 `json:"income_growth"`
	ExpenseGrowth  string                 `json:"expense_growth"`
	AverageExpense string                 `json:"average_expense"`
}

// CategoryBreakdownItemResponse represents one category's share.
type CategoryBreakdownItemResponse struct {
	Category         string `json:"category"`
	Amount           string `json:"amount"`
	Percentage       string `json:"percentage"`
	TransactionCount int    `json:"transaction_count"`
}

// CategoryBreakdownResponse represents the category breakdown payload.
type CategoryBreakdownResponse struct {
	Total      string                          `json:"total"`
	Categories []CategoryBreakdownItemResponse `json:"categories"`
}

func toSeriesBucketResponses(buckets []stats.SeriesBucket) []SeriesBucketResponse {
	responses := make([]SeriesBucketResponse, len(buckets))
	for i, bucket := range buckets {
		responses[i] = SeriesBucketResponse{
			Label:   bucket.Label,
			Income:  bucket.Income.String(),
			Expense: bucket.Expense.String(),
		}
		if bucket.Budget != nil {
			budget := bucket.Budget.String()
			responses[i].Budget = &budget
		}
	}
	return responses
}

// ToOverviewResponse converts a GetOverviewOutput to an OverviewResponse DTO.
func ToOverviewResponse(output *stats.GetOverviewOutput) OverviewResponse {
	return OverviewResponse{
		CardID:         output.CardID.String(),
		Year:           output.Year,
		Monthly:        toSeriesBucketResponses(output.Monthly),
		Yearly:         toSeriesBucketResponses(output.Yearly),
		MonthIncome:    output.MonthIncome.String(),
		MonthExpense:   output.MonthExpense.String(),
		IncomeGrowth:   output.IncomeGrowth.String(),
		ExpenseGrowth:  output.ExpenseGrowth.String(),
		AverageExpense: output.AverageExpense.String(),
	}
}

// ToCategoryBreakdownResponse converts a CategoryBreakdownOutput to its DTO.
func ToCategoryBreakdownResponse(output *stats.CategoryBreakdownOutput) CategoryBreakdownResponse {
	categories := make([]CategoryBreakdownItemResponse, len(output.Categories))
	for i, item := range output.Categories {
		categories[i] = CategoryBreakdownItemResponse{
			Category:         string(item.Category),
			Amount:           item.Amount.String(),
			Percentage:       item.Percentage.String(),
			TransactionCount: item.TransactionCount,
		}
	}
	return CategoryBreakdownResponse{
		Total:      output.Total.String(),
		Categories: categories,
	}
}
