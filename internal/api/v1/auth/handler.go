package auth

import (
	"net/http"

	"gcore-rewards-backend/internal/middleware"
	"gcore-rewards-backend/internal/services"
	"gcore-rewards-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	auth  *services.AuthService
	users *services.UserService
}

func NewHandler(auth *services.AuthService, users *services.UserService) *Handler {
	return &Handler{auth: auth, users: users}
}

// Connect godoc
// @Summary Connect wallet
// @Description Sign in with a wallet address. Unknown wallets are registered on first use.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body ConnectRequest true "Wallet"
// @Success 200 {object} utils.Response{data=ConnectResponse}
// @Failure 400 {object} utils.Response
// @Router /auth/connect [post]
func (h *Handler) Connect(c *gin.Context) {
	var req ConnectRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	token, user, err := h.auth.Connect(c.Request.Context(), req.WalletAddress)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Wallet connected successfully", ConnectResponse{
		Token: token,
		User:  user,
	}))
}

// Me godoc
// @Summary Current user
// @Description Returns the caller's profile and off-chain ledger balance
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=MeResponse}
// @Failure 401 {object} utils.Response
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.CurrentUserID(c)

	user, err := h.users.FindByID(ctx, userID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	balance, err := h.users.LedgerBalance(ctx, userID)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User information retrieved successfully", MeResponse{
		User:          user,
		LedgerBalance: balance,
	}))
}

// Logout godoc
// @Summary Logout
// @Description Revokes the current token
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil || claims.ExpiresAt == nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	if err := h.auth.Logout(c.Request.Context(), middleware.CurrentToken(c), claims.ExpiresAt.Time); err != nil {
		utils.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged out successfully", nil))
}
