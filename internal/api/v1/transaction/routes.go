package transaction

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(public, authorized *gin.RouterGroup) {
	public.GET("/transactions/public", h.PublicFeed)
	authorized.GET("/transactions", h.MyTransactions)
}
