package user

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(authorized *gin.RouterGroup) {
	group := authorized.Group("/users")
	{
		group.PUT("/me", h.UpdateProfile)
		group.GET("/:address", h.GetByAddress)
		group.GET("/:address/balance", h.Balance)
	}
}
