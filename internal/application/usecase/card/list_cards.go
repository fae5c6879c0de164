// Package card contains card-related use cases.
package card

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cardledger/backend/internal/application/adapter"
)

// CardSnapshotOutput is a card plus its lifetime income/expense/net totals,
// the shape the dashboards render.
type CardSnapshotOutput struct {
	Card    *CardOutput
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// ListCardsOutput represents the output of listing cards.
type ListCardsOutput struct {
	Cards []*CardSnapshotOutput
}

// ListCardsUseCase serves card snapshots: the maintained balance alongside
// income and expense totals (converts excluded, as transfers).
type ListCardsUseCase struct {
	cardRepo        adapter.CardRepository
	transactionRepo adapter.TransactionRepository
}

// NewListCardsUseCase creates a new ListCardsUseCase instance.
func NewListCardsUseCase(
	cardRepo adapter.CardRepository,
	transactionRepo adapter.TransactionRepository,
) *ListCardsUseCase {
	return &ListCardsUseCase{
		cardRepo:        cardRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute performs the listing.
func (uc *ListCardsUseCase) Execute(ctx context.Context) (*ListCardsOutput, error) {
	cards, err := uc.cardRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}

	totals, err := uc.transactionRepo.TotalsByCard(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load card totals: %w", err)
	}

	snapshots := make([]*CardSnapshotOutput, len(cards))
	for i, card := range cards {
		cardTotals := totals[card.ID]
		snapshots[i] = &CardSnapshotOutput{
			Card:    toCardOutput(card),
			Income:  cardTotals.Income,
			Expense: cardTotals.Expense,
			Net:     cardTotals.Income.Sub(cardTotals.Expense),
		}
	}

	return &ListCardsOutput{Cards: snapshots}, nil
}
