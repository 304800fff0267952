package user

import (
	"net/http"

	"gcore-rewards-backend/internal/middleware"
	"gcore-rewards-backend/internal/models"
	"gcore-rewards-backend/internal/services"
	"gcore-rewards-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	users *services.UserService
}

func NewHandler(users *services.UserService) *Handler {
	return &Handler{users: users}
}

// ListUsers godoc
// @Summary List users
// @Description Paginated users, newest first, filterable by registration status and role. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param status query string false "PENDING, APPROVED or REJECTED"
// @Param role query string false "USER, ADMIN or SUPER_ADMIN"
// @Param search query string false "Name, wallet or roll number contains"
// @Success 200 {object} utils.Response{data=UserListResponse}
// @Failure 400 {object} utils.Response
// @Router /admin/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	page, limit, err := utils.ParsePagination(c, utils.DefaultPageLimit)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	var q ListQuery
	if !utils.BindQuery(c, &q) {
		return
	}

	filter := services.UserFilter{Search: q.Search, Page: page, Limit: limit}
	if q.Status != "" {
		s := models.UserStatus(q.Status)
		filter.Status = &s
	}
	if q.Role != "" {
		r := models.Role(q.Role)
		filter.Role = &r
	}

	users, total, err := h.users.FindUsers(c.Request.Context(), filter)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Users retrieved successfully", UserListResponse{
		Users:      users,
		Pagination: utils.NewPagination(page, limit, total),
	}))
}

// UpdateStatus godoc
// @Summary Review a registration
// @Description Approves or rejects a user and notifies them. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "User ID"
// @Param body body UpdateStatusRequest true "Status"
// @Success 200 {object} utils.Response{data=models.User}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /admin/users/{id}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user, err := h.users.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("User status updated successfully", user))
}

// UpdateRole godoc
// @Summary Change a user's role
// @Description Super admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "User ID"
// @Param body body UpdateRoleRequest true "Role"
// @Success 200 {object} utils.Response{data=models.User}
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /admin/users/{id}/role [patch]
func (h *Handler) UpdateRole(c *gin.Context) {
	var req UpdateRoleRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user, err := h.users.UpdateRole(c.Request.Context(), middleware.CurrentRole(c), c.Param("id"), req.Role)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("User role updated successfully", user))
}
