package routes

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	_ "github.com/RichardAwuor/Collarless/docs" // swag-generated
	"github.com/RichardAwuor/Collarless/internal/adapter/http/handlers"
	repository2 "github.com/RichardAwuor/Collarless/internal/adapter/persistence/repository"
	"github.com/RichardAwuor/Collarless/internal/infrastructure/database"
	"github.com/RichardAwuor/Collarless/internal/infrastructure/payments"
	"github.com/RichardAwuor/Collarless/internal/infrastructure/subscriptions"
	"github.com/RichardAwuor/Collarless/internal/usecase"
	"github.com/RichardAwuor/Collarless/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

const (
	defaultSweeperInterval  = 30 * time.Second
	defaultSweeperBatchSize = 25
)

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ledger := buildLedger()

	darajaCfg, err := payments.NewDarajaConfigFromEnv()
	if err != nil {
		log.Fatalf("Daraja gateway not configured: %v", err)
	}

	builder := payments.NewDarajaRequestBuilder(darajaCfg)
	gateway := payments.NewDarajaGateway(darajaCfg)
	effect := subscriptions.NewSubscriptionActivator(os.Getenv("SUBSCRIPTION_ACTIVATE_URL"))

	initiationUseCase := usecase.NewPaymentInitiationUseCase(ledger, builder, gateway, darajaCfg.TimeoutWindow)
	callbackUseCase := usecase.NewCallbackUseCase(ledger, effect, darajaCfg.CallbackToken, darajaCfg.LateSuccessResolves)

	sweeper := usecase.NewExpirySweeper(ledger, sweeperInterval(), sweeperBatchSize())
	go sweeper.Run(context.Background())

	stkHandler := handlers.NewSTKPaymentHandler(initiationUseCase)
	callbackHandler := handlers.NewMpesaCallbackHandler(callbackUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addMpesaRoutes(v1, stkHandler, callbackHandler)
}

// buildLedger selects the attempt ledger backend. DynamoDB is the
// production store; LEDGER_BACKEND=memory keeps everything in-process for
// local runs against the sandbox.
func buildLedger() interfaces.IPaymentLedgerRepository {
	if os.Getenv("LEDGER_BACKEND") == "memory" {
		log.Printf("[mpesa][routes] using in-memory payment ledger")
		return repository2.NewPaymentAttemptMemoryRepository()
	}
	return repository2.NewPaymentAttemptDynamoRepository(database.ConnectDynamoDB())
}

func sweeperInterval() time.Duration {
	if v := os.Getenv("SWEEPER_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		log.Printf("[mpesa][routes] invalid SWEEPER_INTERVAL=%q; using default", v)
	}
	return defaultSweeperInterval
}

func sweeperBatchSize() int {
	if v := os.Getenv("SWEEPER_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		log.Printf("[mpesa][routes] invalid SWEEPER_BATCH_SIZE=%q; using default", v)
	}
	return defaultSweeperBatchSize
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}
