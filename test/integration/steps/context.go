// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cardledger/backend/internal/application/usecase/budget"
	"github.com/cardledger/backend/internal/application/usecase/card"
	"github.com/cardledger/backend/internal/application/usecase/ledger"
	"github.com/cardledger/backend/internal/application/usecase/stats"
	"github.com/cardledger/backend/internal/infra/server/router"
	"github.com/cardledger/backend/internal/integration/cache"
	"github.com/cardledger/backend/internal/integration/entrypoint/controller"
	"github.com/cardledger/backend/internal/integration/entrypoint/middleware"
	"github.com/cardledger/backend/internal/integration/persistence"
	"github.com/cardledger/backend/internal/integration/persistence/model"
	"github.com/cardledger/backend/test/integration/mock"
)

// testContext carries per-scenario state: the request being built, the last
// response, and the ids captured along the way.
type testContext struct {
	uri        string
	headers    map[string]string
	client     *http.Client
	response   *response
	db         *mock.Db
	serverPort int

	cardIDs           map[string]uuid.UUID
	lastCardID        uuid.UUID
	lastTransactionID uuid.UUID
	lastBudgetID      uuid.UUID
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var portInit sync.Once
var testDB *mock.Db
var testServerPort int

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		serverPort: testServerPort,
		db: mock.NewDb("card_ledger", map[string]any{
			"cards":        &model.CardModel{},
			"transactions": &model.TransactionModel{},
			"budgets":      &model.BudgetModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Card setup steps
	ctx.Given(`^a card "([^"]*)" exists with currency "([^"]*)"$`, test.aCardExistsWithCurrency)

	// Ledger setup steps
	ctx.Given(`^a recorded income of "([^"]*)" for card "([^"]*)" on "([^"]*)"$`, test.aRecordedIncomeForCardOn)
	ctx.Given(`^a recorded expense of "([^"]*)" for card "([^"]*)" on "([^"]*)"$`, test.aRecordedExpenseForCardOn)
	ctx.Given(`^a recorded expense of "([^"]*)" in category "([^"]*)" for card "([^"]*)" on "([^"]*)"$`, test.aRecordedExpenseInCategoryForCardOn)
	ctx.Given(`^a recorded convert of "([^"]*)" from card "([^"]*)" to card "([^"]*)" on "([^"]*)"$`, test.aRecordedConvertFromCardToCardOn)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the card "([^"]*)" should have balance "([^"]*)"$`, test.theCardShouldHaveBalance)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.cardIDs = make(map[string]uuid.UUID)
	t.lastCardID = uuid.Nil
	t.lastTransactionID = uuid.Nil
	t.lastBudgetID = uuid.Nil
	t.response = nil

	if t.db != nil {
		_ = t.db.ClearDB()
	}
	_ = mock.ClearRedis(mock.NewRedis())
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			redisClient := mock.NewRedis()
			seriesCache := cache.NewSeriesCache(redisClient)

			// Create repositories and the ledger store
			cardRepo := persistence.NewCardRepository(testDB.DbConn)
			transactionRepo := persistence.NewTransactionRepository(testDB.DbConn)
			budgetRepo := persistence.NewBudgetRepository(testDB.DbConn)
			statsRepo := persistence.NewStatsRepository(testDB.DbConn)
			ledgerStore := persistence.NewLedgerStore(testDB.DbConn)

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
			healthController := controller.NewHealthController(
				func() bool { return testDB != nil && testDB.DbConn != nil },
				func() bool { return redisClient.Ping(context.TODO()).Err() == nil },
			)
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
			writeRateLimiter := middleware.NewRateLimiter()

			r := router.NewRouter(
				healthController,
				cardController,
				transactionController,
				dashboardController,
				budgetController,
				writeRateLimiter,
			)
			engine := r.Setup("test")

			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}

			_ = server.ListenAndServe()
		}()
	})

	// Wait for the server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}
