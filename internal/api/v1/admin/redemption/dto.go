package redemption

import (
	"gcore-rewards-backend/internal/models"
	"gcore-rewards-backend/internal/utils"
)

type ListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=PENDING APPROVED FULFILLED DELIVERED CANCELLED"`
	UserID string `form:"userId"`
}

type RedemptionListResponse struct {
	Redemptions []models.Redemption `json:"redemptions"`
	Pagination  utils.Pagination    `json:"pagination"`
}

type UpdateStatusRequest struct {
	Status models.RedemptionStatus `json:"status" binding:"required,oneof=PENDING APPROVED FULFILLED DELIVERED CANCELLED"`
	TxHash string                  `json:"txHash" binding:"omitempty,max=66"`
}
