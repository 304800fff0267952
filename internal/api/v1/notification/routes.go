package notification

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(authorized *gin.RouterGroup) {
	group := authorized.Group("/notifications")
	{
		group.GET("", h.List)
		group.PATCH("/:id/read", h.MarkRead)
		group.POST("/read-all", h.MarkAllRead)
	}
}
