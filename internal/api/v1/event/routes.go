package event

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(authorized *gin.RouterGroup) {
	group := authorized.Group("/events")
	{
		group.GET("", h.List)
		group.POST("/:id/join", h.Join)
	}
}
