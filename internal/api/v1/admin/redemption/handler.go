package redemption

import (
	"net/http"

	"gcore-rewards-backend/internal/models"
	"gcore-rewards-backend/internal/services"
	"gcore-rewards-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	redemptions *services.RedemptionService
}

func NewHandler(redemptions *services.RedemptionService) *Handler {
	return &Handler{redemptions: redemptions}
}

// List godoc
// @Summary List redemptions
// @Description Paginated redemptions, newest first. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param status query string false "Filter by status"
// @Param userId query string false "Filter by user"
// @Success 200 {object} utils.Response{data=RedemptionListResponse}
// @Failure 400 {object} utils.Response
// @Router /admin/redemptions [get]
func (h *Handler) List(c *gin.Context) {
	page, limit, err := utils.ParsePagination(c, utils.DefaultPageLimit)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	var q ListQuery
	if !utils.BindQuery(c, &q) {
		return
	}

	filter := services.RedemptionFilter{UserID: q.UserID, Page: page, Limit: limit}
	if q.Status != "" {
		s := models.RedemptionStatus(q.Status)
		filter.Status = &s
	}

	redemptions, total, err := h.redemptions.List(c.Request.Context(), filter)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Redemptions retrieved successfully", RedemptionListResponse{
		Redemptions: redemptions,
		Pagination:  utils.NewPagination(page, limit, total),
	}))
}

// UpdateStatus godoc
// @Summary Update redemption status
// @Description Moves a redemption forward or cancels it, and notifies the owner. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Redemption ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} utils.Response{data=models.Redemption}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /admin/redemptions/{id} [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	redemption, err := h.redemptions.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status, req.TxHash)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Redemption updated successfully", redemption))
}
