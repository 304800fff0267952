package transaction

import (
	"time"

	"gcore-rewards-backend/internal/models"
)

type TransactionListItem struct {
	ID            string                   `json:"id"`
	CreatedAt     time.Time                `json:"createdAt"`
	UserID        string                   `json:"userId"`
	WalletAddress string                   `json:"walletAddress"`
	Amount        int64                    `json:"amount"`
	Type          models.TransactionType   `json:"type"`
	Status        models.TransactionStatus `json:"status"`
	Description   string                   `json:"description"`
	TxHash        string                   `json:"txHash"`
	RedemptionID  *string                  `json:"redemptionId,omitempty"`
}

type TransactionListResponse struct {
	Transactions []TransactionListItem `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
}
