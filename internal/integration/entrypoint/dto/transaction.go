// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/cardledger/backend/internal/application/usecase/ledger"
)

// CreateTransactionRequest represents the request body for recording a
// transaction. The amount is a face value in the card's currency; an
// explicit currency tag is checked against the card it lands on.
type CreateTransactionRequest struct {
	Type            string   `json:"type" binding:"required,oneof=income expense convert"`
	Amount          *float64 `json:"amount" binding:"required"`
	TransactionDate string   `json:"transaction_date" binding:"required"`
	Asset           string   `json:"asset,omitempty" binding:"omitempty,oneof=cash transfer"`
	Category        string   `json:"category,omitempty"`
	Notes           string   `json:"notes,omitempty" binding:"omitempty,max=1000"`
	Currency        string   `json:"currency,omitempty" binding:"omitempty,oneof=IDR THB USD"`
	FromCardsID     *string  `json:"from_cards_id,omitempty"`
	ToCardsID       *string  `json:"to_cards_id,omitempty"`
}

// UpdateTransactionRequest represents the request body for editing a
// transaction. Absent fields keep their recorded values; the type is
// immutable.
type UpdateTransactionRequest struct {
	Amount          *float64 `json:"amount,omitempty"`
	TransactionDate *string  `json:"transaction_date,omitempty"`
	Asset           *string  `json:"asset,omitempty" binding:"omitempty,oneof=cash transfer"`
	Category        *string  `json:"category,omitempty"`
	Notes           *string  `json:"notes,omitempty" binding:"omitempty,max=1000"`
	FromCardsID     *string  `json:"from_cards_id,omitempty"`
	ToCardsID       *string  `json:"to_cards_id,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	Amount          string    `json:"amount"`
	TransactionDate string    `json:"transaction_date"`
	Asset           string    `json:"asset,omitempty"`
	Category        string    `json:"category,omitempty"`
	Notes           string    `json:"notes"`
	FromCardsID     *string   `json:"from_cards_id,omitempty"`
	ToCardsID       *string   `json:"to_cards_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TransactionListResponse is the page envelope for the transaction log.
type TransactionListResponse struct {
	Data        []TransactionResponse `json:"data"`
	CurrentPage int                   `json:"current_page"`
	LastPage    int                   `json:"last_page"`
	PerPage     int                   `json:"per_page"`
	Total       int64                 `json:"total"`
	From        int                   `json:"from"`
	To          int                   `json:"to"`
}

// ToTransactionResponse converts a TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(txn *ledger.TransactionOutput) TransactionResponse {
	response := TransactionResponse{
		ID:              txn.ID.String(),
		Type:            string(txn.Type),
		Amount:          txn.Amount.String(),
		TransactionDate: txn.Date.Format(ledger.DateLayout),
		Asset:           string(txn.Asset),
		Category:        string(txn.Category),
		Notes:           txn.Notes,
		CreatedAt:       txn.CreatedAt,
		UpdatedAt:       txn.UpdatedAt,
	}
	if txn.FromCardID != nil {
		from := txn.FromCardID.String()
		response.FromCardsID = &from
	}
	if txn.ToCardID != nil {
		to := txn.ToCardID.String()
		response.ToCardsID = &to
	}
	return response
}

// ToTransactionListResponse converts a ListTransactionsOutput to its DTO.
func ToTransactionListResponse(output *ledger.ListTransactionsOutput) TransactionListResponse {
	data := make([]TransactionResponse, len(output.Transactions))
	for i, txn := range output.Transactions {
		data[i] = ToTransactionResponse(txn)
	}
	return TransactionListResponse{
		Data:        data,
		CurrentPage: output.CurrentPage,
		LastPage:    output.LastPage,
		PerPage:     output.PerPage,
		Total:       output.Total,
		From:        output.From,
		To:          output.To,
	}
}
