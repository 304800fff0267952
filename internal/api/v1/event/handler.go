package event

import (
	"net/http"

	"gcore-rewards-backend/internal/middleware"
	"gcore-rewards-backend/internal/services"
	"gcore-rewards-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	events *services.EventService
}

func NewHandler(events *services.EventService) *Handler {
	return &Handler{events: events}
}

// List godoc
// @Summary Active events
// @Description Active events with participant counts and the caller's participation status
// @Tags events
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=[]services.EventView}
// @Router /events [get]
func (h *Handler) List(c *gin.Context) {
	events, err := h.events.List(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Events retrieved successfully", events))
}

// Join godoc
// @Summary Join an event
// @Description Registers the caller. Only approved users may join.
// @Tags events
// @Produce json
// @Security Bearer
// @Param id path string true "Event ID"
// @Success 201 {object} utils.Response{data=models.EventParticipation}
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /events/{id}/join [post]
func (h *Handler) Join(c *gin.Context) {
	participation, err := h.events.Join(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Joined event successfully", participation))
}
