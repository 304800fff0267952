package auth

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(public, authorized *gin.RouterGroup) {
	public.POST("/auth/connect", h.Connect)

	group := authorized.Group("/auth")
	{
		group.GET("/me", h.Me)
		group.POST("/logout", h.Logout)
	}
}
