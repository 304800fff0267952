package api

import (
	"context"
	"net/http"
	"time"

	_ "gcore-rewards-backend/docs"
	adminDistribution "gcore-rewards-backend/internal/api/v1/admin/distribution"
	adminEvent "gcore-rewards-backend/internal/api/v1/admin/event"
	adminRedemption "gcore-rewards-backend/internal/api/v1/admin/redemption"
	adminReward "gcore-rewards-backend/internal/api/v1/admin/reward"
	adminTransaction "gcore-rewards-backend/internal/api/v1/admin/transaction"
	adminUser "gcore-rewards-backend/internal/api/v1/admin/user"
	"gcore-rewards-backend/internal/api/v1/auth"
	"gcore-rewards-backend/internal/api/v1/event"
	"gcore-rewards-backend/internal/api/v1/leaderboard"
	"gcore-rewards-backend/internal/api/v1/notification"
	"gcore-rewards-backend/internal/api/v1/reward"
	"gcore-rewards-backend/internal/api/v1/transaction"
	userRoutes "gcore-rewards-backend/internal/api/v1/user"
	"gcore-rewards-backend/internal/chain"
	"gcore-rewards-backend/internal/middleware"
	"gcore-rewards-backend/internal/services"
	"gcore-rewards-backend/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// Deps is everything the HTTP layer needs. Uploader may be nil.
type Deps struct {
	DB          *gorm.DB
	Redis       *redis.Client
	Gateway     chain.Gateway
	Tokens      *utils.TokenManager
	Denylist    *services.TokenDenylist
	Idempotency *services.IdempotencyStore
	Uploader    services.ImageUploader
	CORSOrigins []string

	Auth          *services.AuthService
	Users         *services.UserService
	Distribution  *services.DistributionService
	Redemptions   *services.RedemptionService
	Rewards       *services.RewardService
	Leaderboard   *services.LeaderboardService
	Transactions  *services.TransactionService
	Notifications *services.NotificationService
	Events        *services.EventService
}

func NewRouter(d Deps) *gin.Engine {
	utils.RegisterValidators()

	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.IdempotencyHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", health(d))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	api.Use(middleware.OptionalAuth(d.Tokens, d.Denylist, d.Users))

	authorized := api.Group("")
	authorized.Use(middleware.AuthMiddleware(d.Tokens, d.Denylist, d.Users))

	admin := api.Group("/admin")
	admin.Use(middleware.AdminAuthMiddleware(d.Tokens, d.Denylist, d.Users))

	auth.NewHandler(d.Auth, d.Users).RegisterRoutes(api, authorized)
	userRoutes.NewHandler(d.Users, d.Gateway).RegisterRoutes(authorized)
	reward.NewHandler(d.Rewards, d.Redemptions, d.Idempotency).RegisterRoutes(api, authorized)
	leaderboard.NewHandler(d.Leaderboard).RegisterRoutes(api)
	transaction.NewHandler(d.Transactions).RegisterRoutes(api, authorized)
	notification.NewHandler(d.Notifications).RegisterRoutes(authorized)
	event.NewHandler(d.Events).RegisterRoutes(authorized)

	adminDistribution.NewHandler(d.Distribution, d.Idempotency).RegisterRoutes(admin)
	adminRedemption.NewHandler(d.Redemptions).RegisterRoutes(admin)
	adminReward.NewHandler(d.Rewards, d.Uploader).RegisterRoutes(admin)
	adminUser.NewHandler(d.Users).RegisterRoutes(admin)
	adminEvent.NewHandler(d.Events, d.Idempotency).RegisterRoutes(admin)
	adminTransaction.NewHandler(d.Transactions).RegisterRoutes(admin)

	return router
}

type HealthResponse struct {
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

// health reports whether the database and redis answer.
func health(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := HealthResponse{Database: "ok", Redis: "ok"}
		healthy := true

		if sqlDB, err := d.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			status.Database = "unavailable"
			healthy = false
		}
		if d.Redis != nil {
			if err := d.Redis.Ping(ctx).Err(); err != nil {
				status.Redis = "unavailable"
				healthy = false
			}
		}

		if !healthy {
			c.JSON(http.StatusServiceUnavailable, utils.NewErrorResponse("Service unhealthy", status))
			return
		}
		c.JSON(http.StatusOK, utils.NewSuccessResponse("OK", status))
	}
}
