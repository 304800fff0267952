package leaderboard

import (
	"net/http"

	"gcore-rewards-backend/internal/services"
	"gcore-rewards-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	leaderboard *services.LeaderboardService
}

func NewHandler(leaderboard *services.LeaderboardService) *Handler {
	return &Handler{leaderboard: leaderboard}
}

// Leaderboard godoc
// @Summary Leaderboard
// @Description Ranks users by on-chain balance, then by verified points in the window.
// @Description Entries whose balance could not be read carry balanceAvailable=false.
// @Tags leaderboard
// @Produce json
// @Param timeframe query string false "all, month or week" default(all)
// @Param category query string false "all or an activity type" default(all)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(50)
// @Success 200 {object} utils.Response{data=services.LeaderboardPage}
// @Failure 400 {object} utils.Response
// @Router /leaderboard [get]
func (h *Handler) Leaderboard(c *gin.Context) {
	page, limit, err := utils.ParsePagination(c, 50)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	var q Query
	if !utils.BindQuery(c, &q) {
		return
	}

	board, err := h.leaderboard.Leaderboard(c.Request.Context(), services.LeaderboardQuery{
		Timeframe: q.Timeframe,
		Category:  q.Category,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		utils.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Leaderboard retrieved successfully", board))
}
