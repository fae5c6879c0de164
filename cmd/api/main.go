// Package main is the entry point for the Card Ledger API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/cardledger/backend/config"
	"github.com/cardledger/backend/internal/application/adapter"
	"github.com/cardledger/backend/internal/application/usecase/budget"
	"github.com/cardledger/backend/internal/application/usecase/card"
	"github.com/cardledger/backend/internal/application/usecase/ledger"
	"github.com/cardledger/backend/internal/application/usecase/stats"
	"github.com/cardledger/backend/internal/infra/db"
	"github.com/cardledger/backend/internal/infra/server/router"
	"github.com/cardledger/backend/internal/integration/cache"
	"github.com/cardledger/backend/internal/integration/entrypoint/controller"
	"github.com/cardledger/backend/internal/integration/entrypoint/middleware"
	"github.com/cardledger/backend/internal/integration/persistence"
	"github.com/cardledger/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting Card Ledger API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(
		&model.CardModel{},
		&model.TransactionModel{},
		&model.BudgetModel{},
	); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	// Initialize the series cache when redis is configured; the engine runs
	// fine without it, every aggregation just recomputes on demand.
	var seriesCache adapter.SeriesCache
	var cacheHealthChecker func() bool
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			slog.Error("Invalid redis URL", "error", err)
			os.Exit(1)
		}
		redisClient := redis.NewClient(opts)
		seriesCache = cache.NewSeriesCache(redisClient)
		cacheHealthChecker = func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err() == nil
		}
		slog.Info("Series cache enabled")
	}

	// Create repositories and the ledger store
	cardRepo := persistence.NewCardRepository(database.DB())
	transactionRepo := persistence.NewTransactionRepository(database.DB())
	budgetRepo := persistence.NewBudgetRepository(database.DB())
	statsRepo := persistence.NewStatsRepository(database.DB())
	ledgerStore := persistence.NewLedgerStore(database.DB())

	// Create card use cases
	createCardUseCase := card.NewCreateCardUseCase(cardRepo)
	listCardsUseCase := card.NewListCardsUseCase(cardRepo, transactionRepo)
	updateCardUseCase := card.NewUpdateCardUseCase(cardRepo)
	deleteCardUseCase := card.NewDeleteCardUseCase(cardRepo, transactionRepo)

	// Create ledger use cases
	recordTransactionUseCase := ledger.NewRecordTransactionUseCase(ledgerStore, seriesCache)
	listTransactionsUseCase := ledger.NewListTransactionsUseCase(transactionRepo)
	updateTransactionUseCase := ledger.NewUpdateTransactionUseCase(ledgerStore, seriesCache)
	deleteTransactionUseCase := ledger.NewDeleteTransactionUseCase(ledgerStore, seriesCache)
	recomputeBalanceUseCase := ledger.NewRecomputeBalanceUseCase(ledgerStore, seriesCache)

	// Create stats use cases
	monthlySeriesUseCase := stats.NewMonthlySeriesUseCase(statsRepo, budgetRepo)
	yearlySeriesUseCase := stats.NewYearlySeriesUseCase(statsRepo)
	totalForUseCase := stats.NewTotalForUseCase(statsRepo, cardRepo)
	averagePerMonthUseCase := stats.NewAveragePerMonthUseCase(statsRepo)
	categoryBreakdownUseCase := stats.NewCategoryBreakdownUseCase(statsRepo)
	overviewUseCase := stats.NewGetOverviewUseCase(
		monthlySeriesUseCase,
		yearlySeriesUseCase,
		totalForUseCase,
		averagePerMonthUseCase,
		seriesCache,
	)

	// Create budget use cases
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, cardRepo)
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo)

	// Create controllers and middleware
	healthController := controller.NewHealthController(database.HealthCheck, cacheHealthChecker)
	cardController := controller.NewCardController(
		createCardUseCase,
		listCardsUseCase,
		updateCardUseCase,
		deleteCardUseCase,
		recomputeBalanceUseCase,
	)
	transactionController := controller.NewTransactionController(
		recordTransactionUseCase,
		listTransactionsUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
	)
	dashboardController := controller.NewDashboardController(overviewUseCase, categoryBreakdownUseCase)
	budgetController := controller.NewBudgetController(
		createBudgetUseCase,
		listBudgetsUseCase,
		updateBudgetUseCase,
		deleteBudgetUseCase,
	)
	writeRateLimiter := middleware.NewRateLimiterWithConfig(cfg.Ledger.WriteRateLimit, cfg.Ledger.WriteRateWindow)

	// Setup router
	r := router.NewRouter(
		healthController,
		cardController,
		transactionController,
		dashboardController,
		budgetController,
		writeRateLimiter,
	)
	engine := r.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
