package auth

import "gcore-rewards-backend/internal/models"

type ConnectRequest struct {
	WalletAddress string `json:"walletAddress" binding:"required,wallet"`
	Signature     string `json:"signature"`
}

type ConnectResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type MeResponse struct {
	User          *models.User `json:"user"`
	LedgerBalance int64        `json:"ledgerBalance"`
}
