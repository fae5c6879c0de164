// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/cardledger/backend/internal/integration/entrypoint/controller"
	"github.com/cardledger/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	cardController        *controller.CardController
	transactionController *controller.TransactionController
	dashboardController   *controller.DashboardController
	budgetController      *controller.BudgetController
	writeRateLimiter      *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	cardController *controller.CardController,
	transactionController *controller.TransactionController,
	dashboardController *controller.DashboardController,
	budgetController *controller.BudgetController,
	writeRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:      healthController,
		cardController:        cardController,
		transactionController: transactionController,
		dashboardController:   dashboardController,
		budgetController:      budgetController,
		writeRateLimiter:      writeRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		if r.cardController != nil {
			cards := v1.Group("/cards")
			{
				cards.GET("", r.cardController.List)
				cards.POST("", r.cardController.Create)
				cards.PATCH("/:id", r.cardController.Update)
				cards.DELETE("/:id", r.cardController.Delete)
				cards.POST("/:id/recompute", r.cardController.Recompute)
			}
		}

		if r.transactionController != nil {
			transactions := v1.Group("/transactions")
			{
				transactions.GET("", r.transactionController.List)
				if r.writeRateLimiter != nil {
					transactions.POST("", r.writeRateLimiter.Middleware(), r.transactionController.Create)
				} else {
					transactions.POST("", r.transactionController.Create)
				}
				transactions.PATCH("/:id", r.transactionController.Update)
				transactions.DELETE("/:id", r.transactionController.Delete)
			}
		}

		if r.dashboardController != nil {
			dashboard := v1.Group("/dashboard")
			{
				dashboard.GET("/overview", r.dashboardController.Overview)
				dashboard.GET("/breakdown", r.dashboardController.Breakdown)
			}
		}

		if r.budgetController != nil {
			budgets := v1.Group("/budgets")
			{
				budgets.GET("", r.budgetController.List)
				budgets.POST("", r.budgetController.Create)
				budgets.PATCH("/:id", r.budgetController.Update)
				budgets.DELETE("/:id", r.budgetController.Delete)
			}
		}
	}
}
