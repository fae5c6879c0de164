// Package ledger contains the use cases that own the transaction log and
// card balances.
package ledger

import (
	"context"
	"fmt"

	"github.com/cardledger/backend/internal/application/adapter"
)

// RecordTransactionInput represents the input for recording a transaction.
type RecordTransactionInput struct {
	Candidate TransactionCandidate
}

// RecordTransactionOutput represents the output of recording a transaction.
type RecordTransactionOutput struct {
	Transaction *TransactionOutput
}

// RecordTransactionUseCase validates a transaction intent and applies it
// atomically: the record is persisted and every referenced card balance is
// updated in one database transaction, or nothing happens at all.
type RecordTransactionUseCase struct {
	store adapter.LedgerStore
	cache adapter.SeriesCache
}

// NewRecordTransactionUseCase creates a new RecordTransactionUseCase instance.
func NewRecordTransactionUseCase(store adapter.LedgerStore, cache adapter.SeriesCache) *RecordTransactionUseCase {
	return &RecordTransactionUseCase{
		store: store,
		cache: cache,
	}
}

// Execute performs the record operation.
func (uc *RecordTransactionUseCase) Execute(ctx context.Context, input RecordTransactionInput) (*RecordTransactionOutput, error) {
	transaction, err := ValidateTransaction(input.Candidate)
	if err != nil {
		return nil, err
	}

	err = atomicallyWithRetry(ctx, uc.store, func(tx adapter.LedgerTx) error {
		if err := checkRequestCurrency(ctx, tx, transaction, input.Candidate.Currency); err != nil {
			return err
		}
		if err := applyEffects(ctx, tx, transaction.Effects()); err != nil {
			return err
		}
		return tx.InsertTransaction(ctx, transaction)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	invalidateSeriesCache(ctx, uc.cache)

	return &RecordTransactionOutput{Transaction: toTransactionOutput(transaction)}, nil
}
