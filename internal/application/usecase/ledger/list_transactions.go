// Package ledger contains the use cases that own the transaction log and
// card balances.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cardledger/backend/internal/application/adapter"
	"github.com/cardledger/backend/internal/domain/entity"
	domainerror "github.com/cardledger/backend/internal/domain/error"
)

const (
	defaultPage    = 1
	defaultPerPage = 15
	maxPerPage     = 100
)

// ListTransactionsInput represents the input for listing transactions.
// CardID entity.AllCardsID (the zero UUID) lists across every card.
type ListTransactionsInput struct {
	CardID    uuid.UUID
	Type      *entity.TransactionType
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PerPage   int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	Total        int64
	CurrentPage  int
	LastPage     int
	PerPage      int
	From         int
	To           int
}

// ListTransactionsUseCase serves the filtered, paginated transaction log,
// ordered by transaction date descending with insertion order breaking ties.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input.Type != nil && !input.Type.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"type must be 'income', 'expense' or 'convert'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, domainerror.NewStatsError(
			domainerror.ErrCodeInvalidDateRange,
			"end date must not precede start date",
			domainerror.ErrInvalidDateRange,
		)
	}

	page := input.Page
	if page < 1 {
		page = defaultPage
	}
	perPage := input.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	result, err := uc.transactionRepo.FindByFilter(
		ctx,
		adapter.TransactionFilter{
			CardID:    input.CardID,
			Type:      input.Type,
			StartDate: input.StartDate,
			EndDate:   input.EndDate,
		},
		adapter.TransactionPagination{Page: page, PerPage: perPage},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	transactions := make([]*TransactionOutput, len(result.Transactions))
	for i, transaction := range result.Transactions {
		transactions[i] = toTransactionOutput(transaction)
	}

	return &ListTransactionsOutput{
		Transactions: transactions,
		Total:        result.Total,
		CurrentPage:  result.CurrentPage,
		LastPage:     result.LastPage,
		PerPage:      result.PerPage,
		From:         result.From,
		To:           result.To,
	}, nil
}
