// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cardledger/backend/internal/application/usecase/card"
	"github.com/cardledger/backend/internal/application/usecase/ledger"
	domainerror "github.com/cardledger/backend/internal/domain/error"
	"github.com/cardledger/backend/internal/integration/entrypoint/dto"
)

// CardController handles card endpoints.
type CardController struct {
	createUseCase    *card.CreateCardUseCase
	listUseCase      *card.ListCardsUseCase
	updateUseCase    *card.UpdateCardUseCase
	deleteUseCase    *card.DeleteCardUseCase
	recomputeUseCase *ledger.RecomputeBalanceUseCase
}

// NewCardController creates a new card controller instance.
func NewCardController(
	createUseCase *card.CreateCardUseCase,
	listUseCase *card.ListCardsUseCase,
	updateUseCase *card.UpdateCardUseCase,
	deleteUseCase *card.DeleteCardUseCase,
	recomputeUseCase *ledger.RecomputeBalanceUseCase,
) *CardController {
	return &CardController{
		createUseCase:    createUseCase,
		listUseCase:      listUseCase,
		updateUseCase:    updateUseCase,
		deleteUseCase:    deleteUseCase,
		recomputeUseCase: recomputeUseCase,
	}
}

// List handles GET /cards requests.
func (c *CardController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve cards",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCardListResponse(output))
}

// Create handles POST /cards requests.
func (c *CardController) Create(ctx *gin.Context) {
	var req dto.CreateCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := card.CreateCardInput{
		Name:     req.Name,
		Number:   req.Number,
		Currency: req.Currency,
		Color:    req.Color,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCardResponse(output.Card))
}

// Update handles PATCH /cards/:id requests.
func (c *CardController) Update(ctx *gin.Context) {
	cardID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid card ID format",
		})
		return
	}

	var req dto.UpdateCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	input := card.UpdateCardInput{
		CardID: cardID,
		Name:   req.Name,
		Number: req.Number,
		Color:  req.Color,
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCardResponse(output.Card))
}

// Delete handles DELETE /cards/:id requests.
func (c *CardController) Delete(ctx *gin.Context) {
	cardID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid card ID format",
		})
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), card.DeleteCardInput{CardID: cardID}); err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Recompute handles POST /cards/:id/recompute requests. It rebuilds the
// card's balance from the transaction history and reports any drift found.
func (c *CardController) Recompute(ctx *gin.Context) {
	cardID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid card ID format",
		})
		return
	}

	output, err := c.recomputeUseCase.Execute(ctx.Request.Context(), ledger.RecomputeBalanceInput{CardID: cardID})
	if err != nil {
		c.handleCardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RecomputeBalanceResponse{
		CardID:     output.CardID.String(),
		Previous:   output.Previous.String(),
		Recomputed: output.Recomputed.String(),
		Drift:      output.Drift.String(),
		Consistent: output.Consistent,
	})
}

// handleCardError maps domain errors to HTTP responses.
func (c *CardController) handleCardError(ctx *gin.Context, err error) {
	var cardErr *domainerror.CardError
	if errors.As(err, &cardErr) {
		ctx.JSON(c.getStatusCodeForCardError(cardErr.Code), dto.ErrorResponse{
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

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForCardError maps card error codes to HTTP status codes.
func (c *CardController) getStatusCodeForCardError(code domainerror.CardErrorCode) int {
	switch code {
	case domainerror.ErrCodeCardNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCardInUse:
		return http.StatusConflict
	case domainerror.ErrCodeCurrencyMismatch:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeInvalidCardName,
		domainerror.ErrCodeInvalidCurrency:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
