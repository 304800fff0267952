package notification

import (
	"net/http"

	"gcore-rewards-backend/internal/middleware"
	"gcore-rewards-backend/internal/services"
	"gcore-rewards-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	notifications *services.NotificationService
}

func NewHandler(notifications *services.NotificationService) *Handler {
	return &Handler{notifications: notifications}
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// List godoc
// @Summary Notifications
// @Description The caller's 50 newest notifications and unread count
// @Tags notifications
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=services.NotificationFeed}
// @Router /notifications [get]
func (h *Handler) List(c *gin.Context) {
	feed, err := h.notifications.List(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Notifications retrieved successfully", feed))
}

// MarkRead godoc
// @Summary Mark notification read
// @Tags notifications
// @Produce json
// @Security Bearer
// @Param id path string true "Notification ID"
// @Success 200 {object} utils.Response{data=models.Notification}
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /notifications/{id}/read [patch]
func (h *Handler) MarkRead(c *gin.Context) {
	n, err := h.notifications.MarkRead(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	n.IsRead = true
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Notification marked as read", n))
}

// MarkAllRead godoc
// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=MarkAllReadResponse}
// @Router /notifications/read-all [post]
func (h *Handler) MarkAllRead(c *gin.Context) {
	n, err := h.notifications.MarkAllRead(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("All notifications marked as read", MarkAllReadResponse{Updated: n}))
}
