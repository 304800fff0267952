package user

import (
	"gcore-rewards-backend/internal/chain"
)

type UpdateProfileRequest struct {
	Name             *string `json:"name" binding:"omitempty,max=100"`
	Email            *string `json:"email" binding:"omitempty,email"`
	CollegeEmail     *string `json:"collegeEmail" binding:"omitempty,email"`
	RollNo           *string `json:"rollNo" binding:"omitempty,max=50"`
	Year             *string `json:"year" binding:"omitempty,max=20"`
	Branch           *string `json:"branch" binding:"omitempty,max=100"`
	CodeforcesHandle *string `json:"codeforcesHandle" binding:"omitempty,max=50"`
}

type BalanceResponse struct {
	WalletAddress string        `json:"walletAddress"`
	Balance       chain.Balance `json:"balance"`
}
