package event

import (
	"gcore-rewards-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	group := admin.Group("/events")
	{
		group.POST("", h.Create)
		group.GET("/:id/participants", h.Participants)
		group.POST("/:id/approve", middleware.Idempotency(h.idempotency, "approve-participants"), h.Approve)
	}
}
