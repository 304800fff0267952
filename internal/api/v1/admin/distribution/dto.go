package distribution

import "gcore-rewards-backend/internal/models"

type DistributeRequest struct {
	WalletAddress string                 `json:"walletAddress" binding:"required,wallet"`
	Amount        int64                  `json:"amount" binding:"required,gt=0"`
	ActivityType  models.ActivityType    `json:"activityType" binding:"required,oneof=CONTEST_PARTICIPATION EVENT_ATTENDANCE WORKSHOP_COMPLETION CONTENT_CREATION VOLUNTEERING"`
	Description   string                 `json:"description" binding:"required"`
	Metadata      map[string]interface{} `json:"metadata"`
}

type BatchItem struct {
	WalletAddress string              `json:"walletAddress" binding:"required,wallet"`
	Amount        int64               `json:"amount" binding:"required,gt=0"`
	ActivityType  models.ActivityType `json:"activityType" binding:"omitempty,oneof=CONTEST_PARTICIPATION EVENT_ATTENDANCE WORKSHOP_COMPLETION CONTENT_CREATION VOLUNTEERING"`
	Description   string              `json:"description" binding:"required"`
}

type BatchDistributeRequest struct {
	Distributions []BatchItem `json:"distributions" binding:"required,min=1,max=100,dive"`
}

type VerifyActivityRequest struct {
	UserID     string `json:"userId" binding:"required,uuid"`
	ActivityID string `json:"activityId" binding:"required,uuid"`
}
