package distribution

import (
	"net/http"

	"gcore-rewards-backend/internal/services"
	"gcore-rewards-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	distribution *services.DistributionService
	idempotency  *services.IdempotencyStore
}

func NewHandler(distribution *services.DistributionService, idempotency *services.IdempotencyStore) *Handler {
	return &Handler{distribution: distribution, idempotency: idempotency}
}

// Distribute godoc
// @Summary Distribute tokens
// @Description Mints tokens to a wallet for a verified activity and records it in the ledger. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Idempotency-Key header string false "Client request key"
// @Param body body DistributeRequest true "Distribution"
// @Success 201 {object} utils.Response{data=services.DistributionResult}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/distribute [post]
func (h *Handler) Distribute(c *gin.Context) {
	var req DistributeRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	result, err := h.distribution.Distribute(c.Request.Context(), services.DistributeInput{
		WalletAddress: req.WalletAddress,
		Amount:        req.Amount,
		ActivityType:  req.ActivityType,
		Description:   req.Description,
		Metadata:      req.Metadata,
	})
	if err != nil {
		utils.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Tokens distributed successfully", result))
}

// BatchDistribute godoc
// @Summary Batch distribute tokens
// @Description Distributes to each item in order. Failed items are reported and do not undo earlier ones. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Idempotency-Key header string false "Client request key"
// @Param body body BatchDistributeRequest true "Distributions"
// @Success 200 {object} utils.Response{data=services.BatchResult}
// @Failure 400 {object} utils.Response
// @Router /admin/batch-distribute [post]
func (h *Handler) BatchDistribute(c *gin.Context) {
	var req BatchDistributeRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	items := make([]services.DistributeInput, len(req.Distributions))
	for i, d := range req.Distributions {
		items[i] = services.DistributeInput{
			WalletAddress: d.WalletAddress,
			Amount:        d.Amount,
			ActivityType:  d.ActivityType,
			Description:   d.Description,
		}
	}

	result := h.distribution.BatchDistribute(c.Request.Context(), items)
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Batch distribution completed", result))
}

// VerifyActivity godoc
// @Summary Verify an activity
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body VerifyActivityRequest true "Activity"
// @Success 200 {object} utils.Response{data=models.Activity}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /admin/verify-activity [post]
func (h *Handler) VerifyActivity(c *gin.Context) {
	var req VerifyActivityRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	activity, err := h.distribution.VerifyActivity(c.Request.Context(), req.UserID, req.ActivityID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Activity verified successfully", activity))
}
