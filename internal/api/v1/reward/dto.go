package reward

import (
	"gcore-rewards-backend/internal/models"
	"gcore-rewards-backend/internal/utils"
)

type ListQuery struct {
	Category        string `form:"category"`
	Search          string `form:"search" binding:"max=100"`
	IncludeInactive bool   `form:"includeInactive"`
}

type RewardListResponse struct {
	Rewards    []models.Reward  `json:"rewards"`
	Pagination utils.Pagination `json:"pagination"`
}

type RedeemRequest struct {
	RewardID string `json:"rewardId" binding:"required,uuid"`
	Quantity int64  `json:"quantity" binding:"required,gt=0"`
}

type RedemptionListResponse struct {
	Redemptions []models.Redemption `json:"redemptions"`
	Pagination  utils.Pagination    `json:"pagination"`
}
