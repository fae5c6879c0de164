// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cardledger/backend/internal/application/adapter"
	"github.com/cardledger/backend/internal/domain/entity"
	domainerror "github.com/cardledger/backend/internal/domain/error"
	"github.com/cardledger/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByFilter retrieves transactions matching the filter with pagination.
// Ordering is date descending with insertion order breaking ties, so two
// transactions on the same day list in the order they were recorded.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*entity.TransactionPage, error) {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{})

	if filter.CardID != entity.AllCardsID {
		query = query.Where("from_card_id = ? OR to_card_id = ?", filter.CardID, filter.CardID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", filter.EndDate)
	}

	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (pagination.Page - 1) * pagination.PerPage
	lastPage := int((total + int64(pagination.PerPage) - 1) / int64(pagination.PerPage))
	if lastPage == 0 {
		lastPage = 1
	}

	var transactionModels []model.TransactionModel
	result := query.
		Order("date DESC, seq ASC").
		Offset(offset).
		Limit(pagination.PerPage).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}

	from, to := 0, 0
	if len(transactions) > 0 {
		from = offset + 1
		to = offset + len(transactions)
	}

	return &entity.TransactionPage{
		Transactions: transactions,
		Total:        total,
		CurrentPage:  pagination.Page,
		LastPage:     lastPage,
		PerPage:      pagination.PerPage,
		From:         from,
		To:           to,
	}, nil
}

// FindByCard retrieves every transaction referencing the card, in insertion order.
func (r *transactionRepository) FindByCard(ctx context.Context, cardID uuid.UUID) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("from_card_id = ? OR to_card_id = ?", cardID, cardID).
		Order("seq ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}

// HasTransactions reports whether any transaction references the card.
func (r *transactionRepository) HasTransactions(ctx context.Context, cardID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("from_card_id = ? OR to_card_id = ?", cardID, cardID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// TotalsByCard returns lifetime income/expense totals keyed by card ID.
// Income anchors to the destination card, expense to the source card, and
// convert rows contribute to neither side.
func (r *transactionRepository) TotalsByCard(ctx context.Context) (map[uuid.UUID]adapter.CardTotals, error) {
	var incomeRows []struct {
		CardID uuid.UUID       `gorm:"column:card_id"`
		Total  decimal.Decimal `gorm:"column:total"`
	}
	if err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("to_card_id as card_id, COALESCE(SUM(amount), 0) as total").
		Where("type = ?", string(entity.TransactionTypeIncome)).
		Group("to_card_id").
		Find(&incomeRows).Error; err != nil {
		return nil, err
	}

	var expenseRows []struct {
		CardID uuid.UUID       `gorm:"column:card_id"`
		Total  decimal.Decimal `gorm:"column:total"`
	}
	if err := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("from_card_id as card_id, COALESCE(SUM(amount), 0) as total").
		Where("type = ?", string(entity.TransactionTypeExpense)).
		Group("from_card_id").
		Find(&expenseRows).Error; err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]adapter.CardTotals)
	for _, row := range incomeRows {
		cardTotals := totals[row.CardID]
		cardTotals.Income = row.Total
		totals[row.CardID] = cardTotals
	}
	for _, row := range expenseRows {
		cardTotals := totals[row.CardID]
		cardTotals.Expense = row.Total
		totals[row.CardID] = cardTotals
	}
	return totals, nil
}
