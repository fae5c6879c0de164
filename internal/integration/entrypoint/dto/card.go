// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/cardledger/backend/internal/application/usecase/card"
)

// CreateCardRequest represents the request body for card creation.
type CreateCardRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Number   string `json:"number,omitempty" binding:"omitempty,max=30"`
	Currency string `json:"currency" binding:"required,oneof=IDR THB USD"`
	Color    string `json:"color,omitempty" binding:"omitempty,max=20"`
}

// UpdateCardRequest represents the request body for card update. Currency
// and balance are not editable; balances only move through the ledger.
type UpdateCardRequest struct {
	Name   *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Number *string `json:"number,omitempty" binding:"omitempty,max=30"`
	Color  *string `json:"color,omitempty" binding:"omitempty,max=20"`
}

// CardResponse represents a single card in API responses.
type CardResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Number           string `json:"number,omitempty"`
	Currency         string `json:"currency"`
	Color            string `json:"color,omitempty"`
	Balance          string `json:"balance"`
	FormattedBalance string `json:"formatted_balance"`
}

// CardSnapshotResponse represents a card with its lifetime totals.
type CardSnapshotResponse struct {
	CardResponse
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Net     string `json:"net"`
}

// CardListResponse represents the response for listing cards.
type CardListResponse struct {
	Cards []CardSnapshotResponse `json:"cards"`
}

// RecomputeBalanceResponse represents the response for a balance recomputation.
type RecomputeBalanceResponse struct {
	CardID     string `json:"card_id"`
	Previous   string `json:"previous"`
	Recomputed string `json:"recomputed"`
	Drift      string `json:"drift"`
	Consistent bool   `json:"consistent"`
}

// ToCardResponse converts a CardOutput to a CardResponse DTO.
func ToCardResponse(output *card.CardOutput) CardResponse {
	return CardResponse{
		ID:               output.ID.String(),
		Name:             output.Name,
		Number:           output.Number,
		Currency:         string(output.Currency),
		Color:            output.Color,
		Balance:          output.Balance.String(),
		FormattedBalance: output.FormattedBalance,
	}
}

// ToCardListResponse converts a ListCardsOutput to a CardListResponse DTO.
func ToCardListResponse(output *card.ListCardsOutput) CardListResponse {
	cards := make([]CardSnapshotResponse, len(output.Cards))
	for i, snapshot := range output.Cards {
		cards[i] = CardSnapshotResponse{
			CardResponse: ToCardResponse(snapshot.Card),
			Income:       snapshot.Income.String(),
			Expense:      snapshot.Expense.String(),
			Net:          snapshot.Net.String(),
		}
	}
	return CardListResponse{Cards: cards}
}
