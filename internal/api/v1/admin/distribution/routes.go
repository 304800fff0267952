package distribution

import (
	"gcore-rewards-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.POST("/distribute", middleware.Idempotency(h.idempotency, "distribute"), h.Distribute)
	admin.POST("/batch-distribute", middleware.Idempotency(h.idempotency, "batch-distribute"), h.BatchDistribute)
	admin.POST("/verify-activity", h.VerifyActivity)
}
