// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cardledger/backend/internal/application/usecase/ledger"
	"github.com/cardledger/backend/internal/application/usecase/stats"
	"github.com/cardledger/backend/internal/domain/entity"
	domainerror "github.com/cardledger/backend/internal/domain/error"
	"github.com/cardledger/backend/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	overviewUseCase  *stats.GetOverviewUseCase
	breakdownUseCase *stats.CategoryBreakdownUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	overviewUseCase *stats.GetOverviewUseCase,
	breakdownUseCase *stats.CategoryBreakdownUseCase,
) *DashboardController {
	return &DashboardController{
		overviewUseCase:  overviewUseCase,
		breakdownUseCase: breakdownUseCase,
	}
}

// Overview handles GET /dashboard/overview requests.
func (c *DashboardController) Overview(ctx *gin.Context) {
	cardID, ok := parseCardScope(ctx)
	if !ok {
		return
	}

	input := stats.GetOverviewInput{CardID: cardID}
	if yearStr := ctx.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil || year < 1 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid year",
				Code:  string(domainerror.ErrCodeInvalidYear),
			})
			return
		}
		input.Year = year
	}

	output, err := c.overviewUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleStatsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOverviewResponse(output))
}

// Breakdown handles GET /dashboard/breakdown requests.
func (c *DashboardController) Breakdown(ctx *gin.Context) {
	cardID, ok := parseCardScope(ctx)
	if !ok {
		return
	}

	transactionType := entity.TransactionTypeExpense
	if typeStr := ctx.Query("type"); typeStr != "" {
		transactionType = entity.TransactionType(typeStr)
	}

	input := stats.CategoryBreakdownInput{
		Type:   transactionType,
		CardID: cardID,
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

	output, err := c.breakdownUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleStatsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryBreakdownResponse(output))
}

// parseCardScope reads the optional card_id query parameter; absence means
// the aggregation spans every card.
func parseCardScope(ctx *gin.Context) (uuid.UUID, bool) {
	cardIDStr := ctx.Query("card_id")
	if cardIDStr == "" {
		return entity.AllCardsID, true
	}
	cardID, err := uuid.Parse(cardIDStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid card ID format",
		})
		return uuid.Nil, false
	}
	return cardID, true
}

// handleStatsError maps domain errors to HTTP responses.
func (c *DashboardController) handleStatsError(ctx *gin.Context, err error) {
	var statsErr *domainerror.StatsError
	if errors.As(err, &statsErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: statsErr.Message,
			Code:  string(statsErr.Code),
		})
		return
	}

	var cardErr *domainerror.CardError
	if errors.As(err, &cardErr) && cardErr.Code == domainerror.ErrCodeCardNotFound {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: cardErr.Message,
			Code:  string(cardErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
