// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardledger/backend/internal/application/usecase/ledger"
	"github.com/cardledger/backend/internal/domain/entity"
	domainerror "github.com/cardledger/backend/internal/domain/error"
	"github.com/cardledger/backend/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	recordUseCase *ledger.RecordTransactionUseCase
	listUseCase   *ledger.ListTransactionsUseCase
	updateUseCase *ledger.UpdateTransactionUseCase
	deleteUseCase *ledger.DeleteTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	recordUseCase *ledger.RecordTransactionUseCase,
	listUseCase *ledger.ListTransactionsUseCase,
	updateUseCase *ledger.UpdateTransactionUseCase,
	deleteUseCase *ledger.DeleteTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		recordUseCase: recordUseCase,
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	input := ledger.ListTransactionsInput{
		CardID: entity.AllCardsID,
	}

	if cardIDStr := ctx.Query("card_id"); cardIDStr != "" {
		cardID, err := uuid.Parse(cardIDStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid card ID format",
			})
			return
		}
		input.CardID = cardID
	}

	if typeStr := ctx.Query("type"); typeStr != "" {
		txnType := entity.TransactionType(typeStr)
		input.Type = &txnType
	}

	if startDateStr := ctx.Query("start_date"); startDateStr != "" {
		startDate, err := time.Parse(ledger.DateLayout, startDateStr)
		if err == nil {
			input.StartDate = &startDate
		}
	}
	if endDateStr := ctx.Query("end_date"); endDateStr != "" {
		endDate, err := time.Parse(ledger.DateLayout, endDateStr)
		if err == nil {
			input.EndDate = &endDate
		}
	}

	if pageStr := ctx.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			input.Page = page
		}
	}
	if perPageStr := ctx.Query("per_page"); perPageStr != "" {
		if perPage, err := strconv.Atoi(perPageStr); err == nil {
			input.PerPage = perPage
		}
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	candidate := ledger.TransactionCandidate{
		Type:     req.Type,
		Date:     req.TransactionDate,
		Asset:    req.Asset,
		Category: req.Category,
		Notes:    req.Notes,
		Currency: req.Currency,
	}
	if req.Amount != nil {
		candidate.Amount = decimal.NewFromFloat(*req.Amount)
		candidate.HasAmount = true
	}

	var ok bool
	if candidate.FromCardID, ok = parseOptionalCardID(ctx, req.FromCardsID); !ok {
		return
	}
	if candidate.ToCardID, ok = parseOptionalCardID(ctx, req.ToCardsID); !ok {
		return
	}

	output, err := c.recordUseCase.Execute(ctx.Request.Context(), ledger.RecordTransactionInput{Candidate: candidate})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID format",
		})
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := ledger.UpdateTransactionInput{
		TransactionID: transactionID,
		Date:          req.TransactionDate,
		Asset:         req.Asset,
		Category:      req.Category,
		Notes:         req.Notes,
	}

	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount)
		input.Amount = &amount
	}

	var ok bool
	if input.FromCardID, ok = parseOptionalCardID(ctx, req.FromCardsID); !ok {
		return
	}
	if input.ToCardID, ok = parseOptionalCardID(ctx, req.ToCardsID); !ok {
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	transactionID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID format",
		})
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), ledger.DeleteTransactionInput{TransactionID: transactionID}); err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// parseOptionalCardID parses an optional card id string, writing a 400
// response and reporting !ok when the value is present but malformed.
func parseOptionalCardID(ctx *gin.Context, value *string) (*uuid.UUID, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	id, err := uuid.Parse(*value)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid card ID format",
		})
		return nil, false
	}
	return &id, true
}

// handleTransactionError maps domain errors to HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	if ve, ok := domainerror.AsValidationError(err); ok {
		ctx.JSON(http.StatusBadRequest, dto.ToValidationErrorResponse(ve))
		return
	}

	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		ctx.JSON(c.getStatusCodeForTransactionError(txnErr.Code), dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	var cardErr *domainerror.CardError
	if errors.As(err, &cardErr) {
		statusCode := http.StatusBadRequest
		switch cardErr.Code {
		case domainerror.ErrCodeCardNotFound:
			statusCode = http.StatusNotFound
		case domainerror.ErrCodeCurrencyMismatch:
			statusCode = http.StatusUnprocessableEntity
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: cardErr.Message,
			Code:  string(cardErr.Code),
		})
		return
	}

	if errors.Is(err, domainerror.ErrCardNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Card not found",
			Code:  string(domainerror.ErrCodeCardNotFound),
		})
		return
	}

	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) && ledgerErr.Code == domainerror.ErrCodeConcurrencyConflict {
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{
			Error: ledgerErr.Message,
			Code:  string(ledgerErr.Code),
		})
		return
	}

	var statsErr *domainerror.StatsError
	if errors.As(err, &statsErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: statsErr.Message,
			Code:  string(statsErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func (c *TransactionController) getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeInvalidAsset,
		domainerror.ErrCodeInvalidCategory,
		domainerror.ErrCodeSameCard,
		domainerror.ErrCodeMissingCardReference,
		domainerror.ErrCodeValidationFailed,
		domainerror.ErrCodeNotesTooLong:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
