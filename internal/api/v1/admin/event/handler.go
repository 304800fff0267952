package event

import (
	"net/http"

	"gcore-rewards-backend/internal/services"
	"gcore-rewards-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	events      *services.EventService
	idempotency *services.IdempotencyStore
}

func NewHandler(events *services.EventService, idempotency *services.IdempotencyStore) *Handler {
	return &Handler{events: events, idempotency: idempotency}
}

// Create godoc
// @Summary Create event
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body CreateEventRequest true "Event"
// @Success 201 {object} utils.Response{data=models.Event}
// @Failure 400 {object} utils.Response
// @Router /admin/events [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateEventRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	event, err := h.events.Create(c.Request.Context(), services.EventInput{
		Title:        req.Title,
		Description:  req.Description,
		Date:         req.Date,
		Location:     req.Location,
		Points:       req.Points,
		ActivityType: req.ActivityType,
		TotalSlots:   req.TotalSlots,
	})
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Event created successfully", event))
}

// Participants godoc
// @Summary Event participants
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path string true "Event ID"
// @Success 200 {object} utils.Response{data=[]models.EventParticipation}
// @Failure 404 {object} utils.Response
// @Router /admin/events/{id}/participants [get]
func (h *Handler) Participants(c *gin.Context) {
	participants, err := h.events.Participants(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Participants retrieved successfully", participants))
}

// Approve godoc
// @Summary Approve participants
// @Description Approves participations and credits the event's points. An empty list approves every pending participant.
// @Description Participations already credited are skipped.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Idempotency-Key header string false "Client request key"
// @Param id path string true "Event ID"
// @Param body body ApproveRequest false "Participations"
// @Success 200 {object} utils.Response{data=services.ApprovalResult}
// @Failure 404 {object} utils.Response
// @Router /admin/events/{id}/approve [post]
func (h *Handler) Approve(c *gin.Context) {
	var req ApproveRequest
	if c.Request.ContentLength != 0 && !utils.BindAndValidate(c, &req) {
		return
	}

	result, err := h.events.ApproveParticipants(c.Request.Context(), c.Param("id"), req.ParticipationIDs)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Participants processed", result))
}
