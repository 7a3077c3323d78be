package routes

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	_ "payeezy_gateway/docs" // swag generated
	"payeezy_gateway/internal/adapter/http/handlers"
	"payeezy_gateway/internal/adapter/persistence/repository"
	"payeezy_gateway/internal/infrastructure/config"
	"payeezy_gateway/internal/infrastructure/database"
	"payeezy_gateway/internal/infrastructure/logger"
	"payeezy_gateway/internal/infrastructure/payments"
	"payeezy_gateway/internal/usecase"
	"payeezy_gateway/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Run will start the server
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	router := gin.New()
	setMiddlewares(router, log)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if err := getRoutes(context.Background(), router, cfg, log); err != nil {
		return err
	}

	log.Info("starting server", zap.Int("port", cfg.Port))
	if err := router.Run(":" + strconv.Itoa(cfg.Port)); err != nil {
		return fmt.Errorf("failed to startup the application: %w", err)
	}
	return nil
}

func getRoutes(ctx context.Context, router *gin.Engine, cfg config.Config, log *zap.Logger) error {
	refs, err := newTransactionReferenceRepository(ctx, cfg, log)
	if err != nil {
		return err
	}

	var paymentGateway interfaces.IPaymentGateway
	payeezyGateway, err := newPayeezyGateway(cfg.Payeezy, log)
	if err != nil {
		// Health and docs stay up; payment routes answer 503.
		log.Error("payeezy gateway not configured", zap.Error(err))
	} else {
		paymentGateway = payeezyGateway
	}

	paymentUseCase := usecase.NewPaymentUseCase(paymentGateway, refs, log.Named("payment.usecase"))
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase, log.Named("payment.handler"))

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPaymentRoutes(v1, paymentHandler)
	return nil
}

func newPayeezyGateway(cfg config.PayeezyConfig, log *zap.Logger) (*payments.PayeezyGateway, error) {
	return payments.NewPayeezyGateway(
		payments.PayeezyConfig{
			APIKey:        cfg.APIKey,
			APISecret:     cfg.APISecret,
			MerchantToken: cfg.MerchantToken,
			Environment:   cfg.Environment,
			BaseURL:       cfg.BaseURL,
			Mock:          cfg.Mock,
		},
		payments.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		payments.WithLogger(log.Named("payment.gateway")),
	)
}

func newTransactionReferenceRepository(ctx context.Context, cfg config.Config, log *zap.Logger) (interfaces.ITransactionReferenceRepository, error) {
	switch cfg.TagStore.Backend {
	case config.TagStoreDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
		if err != nil {
			return nil, fmt.Errorf("connect dynamodb: %w", err)
		}
		log.Info("transaction reference store", zap.String("backend", "dynamodb"), zap.String("table", cfg.DynamoDB.TransactionsTable))
		return repository.NewTransactionReferenceDynamoRepository(ddb, cfg.DynamoDB.TransactionsTable), nil
	case config.TagStoreRedis:
		rdb, err := database.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		log.Info("transaction reference store", zap.String("backend", "redis"), zap.String("addr", cfg.Redis.Addr))
		return repository.NewTransactionReferenceRedisRepository(rdb, cfg.TagStore.TTL), nil
	default:
		log.Info("transaction reference store disabled; refunds and voids need transaction_tag")
		return nil, nil
	}
}

func setMiddlewares(router *gin.Engine, log *zap.Logger) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("recovered from panic", zap.Any("panic", recovered))
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}
