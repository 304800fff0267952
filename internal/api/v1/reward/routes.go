package reward

import (
	"gcore-rewards-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) RegisterRoutes(public, authorized *gin.RouterGroup) {
	public.GET("/rewards", h.ListRewards)

	group := authorized.Group("/rewards")
	{
		group.POST("/redeem", middleware.Idempotency(h.idempotency, "redeem"), h.Redeem)
		group.GET("/redemptions", h.MyRedemptions)
	}
}
