package redemption

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	group := admin.Group("/redemptions")
	{
		group.GET("", h.List)
		group.PATCH("/:id", h.UpdateStatus)
	}
}
