package user

import (
	"gcore-rewards-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	group := admin.Group("/users")
	{
		group.GET("", h.ListUsers)
		group.PATCH("/:id/status", h.UpdateStatus)
		group.PATCH("/:id/role", middleware.RequireSuperAdmin(), h.UpdateRole)
	}
}
