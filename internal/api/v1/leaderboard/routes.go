package leaderboard

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(public *gin.RouterGroup) {
	public.GET("/leaderboard", h.Leaderboard)
}
