package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"washline/config"
	"washline/database"
	billRepoPkg "washline/database/repository/bill"
	customerRepoPkg "washline/database/repository/customer"
	sessionRepoPkg "washline/database/repository/session"
	"washline/database/table"
	"washline/handlers"
	"washline/middleware"
	"washline/routes"
	"washline/services/auth"
	"washline/services/billing"
	"washline/services/customer"
	"washline/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	utils.InitLogger(cfg.Env, cfg.LogLevel)
	logger := utils.GetLogger()
	defer logger.Sync()

	ctx := context.Background()

	mongoClient, err := database.Connect(ctx, cfg)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to MongoDB: %v", err)
	}
	if err := table.EnsureIndexes(ctx, mongoClient, cfg.TableName, cfg.TableName); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure table indexes: %v", err)
	}
	tbl := table.NewMongoTable(mongoClient, cfg.TableName, cfg.TableName)

	// Redis is optional; without it the rate limiter runs per-process.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			logger.Sugar().Warnf("main: redis unreachable, rate limiting falls back to in-process: %v", err)
		}
		cancel()
	}

	utils.StartHealthMonitor(mongoClient, redisClient)

	// Create the Gin router.
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimit(redisClient, cfg.MaxRequestsPerMin))

	// Repositories.
	custRepo := customerRepoPkg.NewCustomerRepo(tbl)
	billsRepo := billRepoPkg.NewBillRepo(tbl)
	sessRepo := sessionRepoPkg.NewSessionRepo(tbl)

	// Services.
	billingService := &billing.DefaultBillingService{
		Repo:         billsRepo,
		CustomerRepo: custRepo,
		BillTTL:      time.Duration(cfg.BillTTLDays) * 24 * time.Hour,
	}
	customerService := &customer.DefaultCustomerService{
		Repo:    custRepo,
		Billing: billingService,
	}
	authService := &auth.DefaultAuthService{
		Repo:         sessRepo,
		Passcode:     cfg.AdminPasscode,
		PasscodeHash: cfg.AdminPasscodeHash,
		SessionTTL:   time.Duration(cfg.SessionTTLHours) * time.Hour,
	}
	if cfg.AdminPasscode == "" && cfg.AdminPasscodeHash == "" {
		logger.Error("ADMIN_PASSCODE is not set. Login will be disabled.")
	}

	handlerBundle := handlers.NewHandlerBundle(authService, customerService, billingService)
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Sugar().Warnf("main: mongo disconnect: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
