package transaction

import (
	"gcore-rewards-backend/internal/models"
	"gcore-rewards-backend/internal/utils"
)

type TransactionListResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Pagination   utils.Pagination     `json:"pagination"`
}

type PublicQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=50"`
}
