package reward

import (
	"net/http"

	"gcore-rewards-backend/internal/middleware"
	"gcore-rewards-backend/internal/services"
	"gcore-rewards-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	rewards     *services.RewardService
	redemptions *services.RedemptionService
	idempotency *services.IdempotencyStore
}

func NewHandler(rewards *services.RewardService, redemptions *services.RedemptionService, idempotency *services.IdempotencyStore) *Handler {
	return &Handler{rewards: rewards, redemptions: redemptions, idempotency: idempotency}
}

// ListRewards godoc
// @Summary List rewards
// @Description Lists the reward catalogue cheapest first. Admins may include inactive rewards.
// @Tags rewards
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param category query string false "Category filter"
// @Param search query string false "Name or description contains"
// @Param includeInactive query bool false "Admins only"
// @Success 200 {object} utils.Response{data=RewardListResponse}
// @Failure 400 {object} utils.Response
// @Router /rewards [get]
func (h *Handler) ListRewards(c *gin.Context) {
	page, limit, err := utils.ParsePagination(c, utils.DefaultPageLimit)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	var q ListQuery
	if !utils.BindQuery(c, &q) {
		return
	}

	rewards, total, err := h.rewards.FindRewards(c.Request.Context(), services.RewardFilter{
		Category:        q.Category,
		Search:          q.Search,
		IncludeInactive: q.IncludeInactive && middleware.CurrentRole(c).IsAdmin(),
		Page:            page,
		Limit:           limit,
	})
	if err != nil {
		utils.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Rewards retrieved successfully", RewardListResponse{
		Rewards:    rewards,
		Pagination: utils.NewPagination(page, limit, total),
	}))
}

// Redeem godoc
// @Summary Redeem a reward
// @Description Reserves stock and burns the cost on chain. Send Idempotency-Key to make retries safe.
// @Tags rewards
// @Accept json
// @Produce json
// @Security Bearer
// @Param Idempotency-Key header string false "Client request key"
// @Param body body RedeemRequest true "Reward and quantity"
// @Success 201 {object} utils.Response{data=models.Redemption}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /rewards/redeem [post]
func (h *Handler) Redeem(c *gin.Context) {
	var req RedeemRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	redemption, err := h.redemptions.Redeem(c.Request.Context(), middleware.CurrentUserID(c), req.RewardID, req.Quantity)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Reward redeemed successfully", redemption))
}

// MyRedemptions godoc
// @Summary Own redemptions
// @Tags rewards
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} utils.Response{data=RedemptionListResponse}
// @Router /rewards/redemptions [get]
func (h *Handler) MyRedemptions(c *gin.Context) {
	page, limit, err := utils.ParsePagination(c, utils.DefaultPageLimit)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	redemptions, total, err := h.redemptions.ListForUser(c.Request.Context(), middleware.CurrentUserID(c), page, limit)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Redemptions retrieved successfully", RedemptionListResponse{
		Redemptions: redemptions,
		Pagination:  utils.NewPagination(page, limit, total),
	}))
}
