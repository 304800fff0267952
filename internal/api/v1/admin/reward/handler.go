package reward

import (
	"net/http"
	"path"
	"strings"

	"gcore-rewards-backend/internal/services"
	"gcore-rewards-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 5 << 20

var (
	errUploadDisabled = utils.NewAppError(http.StatusServiceUnavailable, "Image upload is not configured")
	errImageRequired  = utils.BadRequest("Image file is required")
	errImageTooLarge  = utils.BadRequest("Image must be 5MB or smaller")
	errImageType      = utils.BadRequest("Image must be jpg, png, gif or webp")
	errUploadFailed   = utils.Internal("Failed to upload image")
)

var allowedImageExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}

type Handler struct {
	rewards  *services.RewardService
	uploader services.ImageUploader
}

// NewHandler builds the admin reward handler. uploader may be nil when OSS
// is not configured; image endpoints then answer 503.
func NewHandler(rewards *services.RewardService, uploader services.ImageUploader) *Handler {
	return &Handler{rewards: rewards, uploader: uploader}
}

// List godoc
// @Summary List all rewards
// @Description Lists every reward including inactive ones. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param category query string false "Category filter"
// @Success 200 {object} utils.Response{data=[]models.Reward}
// @Router /admin/rewards [get]
func (h *Handler) List(c *gin.Context) {
	page, limit, err := utils.ParsePagination(c, utils.DefaultPageLimit)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	rewards, total, err := h.rewards.FindRewards(c.Request.Context(), services.RewardFilter{
		Category:        c.Query("category"),
		Search:          c.Query("search"),
		IncludeInactive: true,
		Page:            page,
		Limit:           limit,
	})
	if err != nil {
		utils.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Rewards retrieved successfully", gin.H{
		"rewards":    rewards,
		"pagination": utils.NewPagination(page, limit, total),
	}))
}

// Create godoc
// @Summary Create reward
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body CreateRewardRequest true "Reward"
// @Success 201 {object} utils.Response{data=models.Reward}
// @Failure 400 {object} utils.Response
// @Router /admin/rewards [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRewardRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	reward, err := h.rewards.Create(c.Request.Context(), services.RewardInput{
		Name:        req.Name,
		Description: req.Description,
		Cost:        req.Cost,
		Stock:       req.Stock,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Reward created successfully", reward))
}

// Update godoc
// @Summary Update reward
// @Description Partial update; omitted fields are left unchanged
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "Reward ID"
// @Param body body UpdateRewardRequest true "Fields to change"
// @Success 200 {object} utils.Response{data=models.Reward}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /admin/rewards/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRewardRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	reward, err := h.rewards.Update(c.Request.Context(), c.Param("id"), services.RewardUpdate{
		Name:        req.Name,
		Description: req.Description,
		Cost:        req.Cost,
		Stock:       req.Stock,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsActive:    req.IsActive,
	})
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Reward updated successfully", reward))
}

// Delete godoc
// @Summary Delete reward
// @Description Rewards with redemption history are deactivated instead of deleted
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "Reward ID"
// @Success 200 {object} utils.Response{data=DeleteRewardResponse}
// @Failure 404 {object} utils.Response
// @Router /admin/rewards/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	hard, err := h.rewards.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.Fail(c, err)
		return
	}

	message := "Reward deleted successfully"
	if !hard {
		message = "Reward has redemptions and was deactivated"
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse(message, DeleteRewardResponse{Deleted: hard, Deactivated: !hard}))
}

// UploadImage godoc
// @Summary Upload reward image
// @Description Stores the image in OSS and returns its public URL
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param image formData file true "Image file"
// @Success 200 {object} utils.Response{data=ImageUploadResponse}
// @Failure 400 {object} utils.Response
// @Failure 503 {object} utils.Response
// @Router /admin/rewards/image [post]
func (h *Handler) UploadImage(c *gin.Context) {
	if h.uploader == nil {
		utils.Fail(c, errUploadDisabled)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.Fail(c, errImageRequired)
		return
	}
	if file.Size > maxImageSize {
		utils.Fail(c, errImageTooLarge)
		return
	}
	if !allowedImageExt[strings.ToLower(path.Ext(file.Filename))] {
		utils.Fail(c, errImageType)
		return
	}

	body, err := file.Open()
	if err != nil {
		utils.Fail(c, errUploadFailed.Wrap(err))
		return
	}
	defer body.Close()

	url, err := h.uploader.Upload(file.Filename, body)
	if err != nil {
		utils.Fail(c, errUploadFailed.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Image uploaded successfully", ImageUploadResponse{URL: url}))
}

// UploadToken godoc
// @Summary Get OSS STS Token
// @Description Get STS token for uploading files to Alibaba Cloud OSS
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=services.STSCredentials}
// @Failure 503 {object} utils.Response
// @Router /admin/upload/token [get]
func (h *Handler) UploadToken(c *gin.Context) {
	if h.uploader == nil {
		utils.Fail(c, errUploadDisabled)
		return
	}

	token, err := h.uploader.UploadToken()
	if err != nil {
		utils.Fail(c, utils.Internal("Failed to get OSS token").Wrap(err))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("OSS token retrieved successfully", token))
}
