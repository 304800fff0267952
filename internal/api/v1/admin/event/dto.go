package event

import (
	"time"

	"gcore-rewards-backend/internal/models"
)

type CreateEventRequest struct {
	Title        string              `json:"title" binding:"required,max=200"`
	Description  string              `json:"description"`
	Date         time.Time           `json:"date" binding:"required"`
	Location     string              `json:"location" binding:"max=200"`
	Points       int64               `json:"points" binding:"gte=0"`
	ActivityType models.ActivityType `json:"activityType" binding:"omitempty,oneof=CONTEST_PARTICIPATION EVENT_ATTENDANCE WORKSHOP_COMPLETION CONTENT_CREATION VOLUNTEERING"`
	TotalSlots   int64               `json:"totalSlots" binding:"gte=0"`
}

type ApproveRequest struct {
	ParticipationIDs []string `json:"participationIds" binding:"omitempty,dive,uuid"`
}
