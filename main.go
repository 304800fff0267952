package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gcore-rewards-backend/config"
	"gcore-rewards-backend/internal/api"
	"gcore-rewards-backend/internal/chain"
	"gcore-rewards-backend/internal/database"
	"gcore-rewards-backend/internal/services"
	"gcore-rewards-backend/internal/utils"
	"gcore-rewards-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title G-CORE Rewards API
// @version 1.0
// @description Campus rewards token distribution and redemption ledger.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	}); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)
	ctx := context.Background()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Log.Fatal("failed to connect database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal("failed to migrate database", zap.Error(err))
	}

	rdb, err := database.ConnectRedis(ctx, cfg)
	if err != nil {
		logger.Log.Fatal("failed to connect redis", zap.Error(err))
	}
	defer rdb.Close()

	chainLog := logger.Named("chain")
	gateway, err := chain.NewEthGateway(ctx, chain.Config{
		RPCURL:             cfg.RPCURL,
		ChainID:            cfg.ChainID,
		PrivateKey:         cfg.PrivateKey,
		TokenAddress:       cfg.ContractAddress,
		DistributorAddress: cfg.DistributorAddress,
		MarketplaceAddress: cfg.MarketplaceAddress,
		Timeout:            cfg.ChainTimeout,
	}, utils.NewHTTPClient(cfg.ChainTimeout, chainLog), chainLog)
	if err != nil {
		logger.Log.Fatal("failed to connect chain gateway", zap.Error(err))
	}
	defer gateway.Close()

	var uploader services.ImageUploader
	if cfg.OSSBucketName != "" {
		uploader = services.NewOSSUploader(services.OSSConfig{
			Endpoint:        cfg.OSSEndpoint,
			Region:          cfg.OSSRegion,
			Bucket:          cfg.OSSBucketName,
			AccessKeyID:     cfg.OSSAccessKeyID,
			AccessKeySecret: cfg.OSSAccessKeySecret,
			RoleArn:         cfg.OSSRoleArn,
		})
	} else {
		logger.Log.Warn("OSS_BUCKET_NAME not set, reward image upload disabled")
	}

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn)
	denylist := services.NewTokenDenylist(rdb)
	users := services.NewUserService(db, rdb)
	distribution := services.NewDistributionService(db, users, gateway, logger.Named("distribution"))

	router := api.NewRouter(api.Deps{
		DB:          db,
		Redis:       rdb,
		Gateway:     gateway,
		Tokens:      tokens,
		Denylist:    denylist,
		Idempotency: services.NewIdempotencyStore(rdb, cfg.IdempotencyTTL),
		Uploader:    uploader,
		CORSOrigins: cfg.CORSOrigins,

		Auth:          services.NewAuthService(users, tokens, denylist),
		Users:         users,
		Distribution:  distribution,
		Redemptions:   services.NewRedemptionService(db, gateway, logger.Named("redemption")),
		Rewards:       services.NewRewardService(db),
		Leaderboard:   services.NewLeaderboardService(db, gateway, logger.Named("leaderboard")),
		Transactions:  services.NewTransactionService(db),
		Notifications: services.NewNotificationService(db),
		Events:        services.NewEventService(db, distribution, logger.Named("event")),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down server")

	// Chain writes block on mining, so give in-flight requests the chain timeout to finish.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ChainTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("server forced to shutdown", zap.Error(err))
	}
}
