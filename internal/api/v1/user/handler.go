package user

import (
	"net/http"

	"gcore-rewards-backend/internal/chain"
	"gcore-rewards-backend/internal/middleware"
	"gcore-rewards-backend/internal/services"
	"gcore-rewards-backend/internal/utils"
	"gcore-rewards-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	users   *services.UserService
	gateway chain.Gateway
}

func NewHandler(users *services.UserService, gateway chain.Gateway) *Handler {
	return &Handler{users: users, gateway: gateway}
}

// UpdateProfile godoc
// @Summary Update own profile
// @Description Edits the caller's registration details. A rejected registration goes back to review.
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} utils.Response{data=models.User}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /users/me [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), services.ProfileUpdate{
		Name:             req.Name,
		Email:            req.Email,
		CollegeEmail:     req.CollegeEmail,
		RollNo:           req.RollNo,
		Year:             req.Year,
		Branch:           req.Branch,
		CodeforcesHandle: req.CodeforcesHandle,
	})
	if err != nil {
		utils.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Profile updated successfully", user))
}

// GetByAddress godoc
// @Summary Get user by wallet
// @Description Returns a user with their latest transactions and activities
// @Tags user
// @Produce json
// @Security Bearer
// @Param address path string true "Wallet address"
// @Success 200 {object} utils.Response{data=models.User}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /users/{address} [get]
func (h *Handler) GetByAddress(c *gin.Context) {
	user, err := h.users.FindByWallet(c.Request.Context(), c.Param("address"))
	if err != nil {
		utils.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("User retrieved successfully", user))
}

// Balance godoc
// @Summary On-chain balance
// @Description Reads the token balance of a wallet from the chain
// @Tags user
// @Produce json
// @Security Bearer
// @Param address path string true "Wallet address"
// @Success 200 {object} utils.Response{data=BalanceResponse}
// @Failure 400 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /users/{address}/balance [get]
func (h *Handler) Balance(c *gin.Context) {
	addr, err := chain.Normalize(c.Param("address"))
	if err != nil {
		utils.Fail(c, services.ErrInvalidAddress)
		return
	}

	balance, err := h.gateway.GetBalance(c.Request.Context(), addr)
	if err != nil {
		logger.Log.Error("balance lookup failed", zap.String("wallet", addr), zap.Error(err))
		utils.Fail(c, services.ErrChainFailure.Wrap(err))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Balance retrieved successfully", BalanceResponse{
		WalletAddress: addr,
		Balance:       balance,
	}))
}
