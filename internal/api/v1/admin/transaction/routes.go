package transaction

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	group := admin.Group("/transactions")
	{
		group.GET("", h.ListTransactions)
		group.GET("/export", h.ExportTransactions)
	}
}
