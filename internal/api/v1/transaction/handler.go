package transaction

import (
	"net/http"

	"gcore-rewards-backend/internal/middleware"
	"gcore-rewards-backend/internal/services"
	"gcore-rewards-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	transactions *services.TransactionService
}

func NewHandler(transactions *services.TransactionService) *Handler {
	return &Handler{transactions: transactions}
}

// MyTransactions godoc
// @Summary Own transaction history
// @Tags transactions
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} utils.Response{data=TransactionListResponse}
// @Failure 401 {object} utils.Response
// @Router /transactions [get]
func (h *Handler) MyTransactions(c *gin.Context) {
	page, limit, err := utils.ParsePagination(c, utils.DefaultPageLimit)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	transactions, total, err := h.transactions.ListForUser(c.Request.Context(), middleware.CurrentUserID(c), page, limit)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Transactions retrieved successfully", TransactionListResponse{
		Transactions: transactions,
		Pagination:   utils.NewPagination(page, limit, total),
	}))
}

// PublicFeed godoc
// @Summary Recent earnings
// @Description Latest completed token distributions for the public activity feed
// @Tags transactions
// @Produce json
// @Param limit query int false "At most 50" default(50)
// @Success 200 {object} utils.Response{data=[]models.Transaction}
// @Router /transactions/public [get]
func (h *Handler) PublicFeed(c *gin.Context) {
	var q PublicQuery
	if !utils.BindQuery(c, &q) {
		return
	}

	transactions, err := h.transactions.PublicFeed(c.Request.Context(), q.Limit)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Transactions retrieved successfully", transactions))
}
