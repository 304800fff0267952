package user

import (
	"gcore-rewards-backend/internal/models"
	"gcore-rewards-backend/internal/utils"
)

type ListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	Role   string `form:"role" binding:"omitempty,oneof=USER ADMIN SUPER_ADMIN"`
	Search string `form:"search" binding:"max=100"`
}

type UserListResponse struct {
	Users      []models.User    `json:"users"`
	Pagination utils.Pagination `json:"pagination"`
}

type UpdateStatusRequest struct {
	Status models.UserStatus `json:"status" binding:"required,oneof=PENDING APPROVED REJECTED"`
}

type UpdateRoleRequest struct {
	Role models.Role `json:"role" binding:"required,oneof=USER ADMIN SUPER_ADMIN"`
}
