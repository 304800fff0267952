package transaction

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"gcore-rewards-backend/internal/models"
	"gcore-rewards-backend/internal/services"
	"gcore-rewards-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

const exportLimit = 10000

type Handler struct {
	transactions *services.TransactionService
}

func NewHandler(transactions *services.TransactionService) *Handler {
	return &Handler{transactions: transactions}
}

// parseFilter reads the shared query filters. Invalid values are 400s.
func parseFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if userID, exists := c.GetQuery("user_id"); exists {
		filter.UserID = &userID
	}

	if typeStr, exists := c.GetQuery("type"); exists {
		t := models.TransactionType(typeStr)
		if !t.Valid() {
			return filter, utils.BadRequest("Invalid type")
		}
		filter.Type = &t
	}

	if statusStr, exists := c.GetQuery("status"); exists {
		s := models.TransactionStatus(statusStr)
		if !s.Valid() {
			return filter, utils.BadRequest("Invalid status")
		}
		filter.Status = &s
	}

	if startTimeStr, exists := c.GetQuery("start_time"); exists {
		startTime, err := time.Parse(time.RFC3339, startTimeStr)
		if err != nil {
			return filter, utils.BadRequest("Invalid start_time format")
		}
		filter.StartTime = &startTime
	}

	if endTimeStr, exists := c.GetQuery("end_time"); exists {
		endTime, err := time.Parse(time.RFC3339, endTimeStr)
		if err != nil {
			return filter, utils.BadRequest("Invalid end_time format")
		}
		filter.EndTime = &endTime
	}

	if minAmountStr, exists := c.GetQuery("min_amount"); exists {
		minAmount, err := strconv.ParseInt(minAmountStr, 10, 64)
		if err != nil {
			return filter, utils.BadRequest("Invalid min_amount")
		}
		filter.MinAmount = &minAmount
	}

	if maxAmountStr, exists := c.GetQuery("max_amount"); exists {
		maxAmount, err := strconv.ParseInt(maxAmountStr, 10, 64)
		if err != nil {
			return filter, utils.BadRequest("Invalid max_amount")
		}
		filter.MaxAmount = &maxAmount
	}

	return filter, nil
}

// ListTransactions godoc
// @Summary List transactions
// @Description Get a paginated list of transactions with filtering. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param user_id query string false "Filter by user ID"
// @Param type query string false "EARN, REDEEM or TRANSFER"
// @Param status query string false "PENDING, COMPLETED or FAILED"
// @Param start_time query string false "Filter by start time (RFC3339)"
// @Param end_time query string false "Filter by end time (RFC3339)"
// @Param min_amount query int false "Filter by minimum amount"
// @Param max_amount query int false "Filter by maximum amount"
// @Success 200 {object} utils.Response{data=TransactionListResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/transactions [get]
func (h *Handler) ListTransactions(c *gin.Context) {
	page, limit, err := utils.ParsePagination(c, utils.DefaultPageLimit)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	filter, err := parseFilter(c)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	filter.Page = page
	filter.Limit = limit

	transactions, total, err := h.transactions.FindTransactions(c.Request.Context(), filter)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	items := make([]TransactionListItem, 0, len(transactions))
	for _, t := range transactions {
		item := TransactionListItem{
			ID:           t.ID,
			CreatedAt:    t.CreatedAt,
			UserID:       t.UserID,
			Amount:       t.Amount,
			Type:         t.Type,
			Status:       t.Status,
			Description:  t.Description,
			TxHash:       t.TxHash,
			RedemptionID: t.RedemptionID,
		}
		if t.User != nil {
			item.WalletAddress = t.User.WalletAddress
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Transactions retrieved successfully", TransactionListResponse{
		Transactions: items,
		Total:        total,
		Page:         page,
		Limit:        limit,
	}))
}

// ExportTransactions godoc
// @Summary Export transactions
// @Description Export matching transactions to CSV, at most 10000 rows. Admin only.
// @Tags admin
// @Produce text/csv
// @Security Bearer
// @Param user_id query string false "Filter by user ID"
// @Param type query string false "Filter by transaction type"
// @Param status query string false "Filter by status"
// @Param start_time query string false "Filter by start time (RFC3339)"
// @Param end_time query string false "Filter by end time (RFC3339)"
// @Success 200 {string} string "CSV content"
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /admin/transactions/export [get]
func (h *Handler) ExportTransactions(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	filter.Page = 1
	filter.Limit = exportLimit

	transactions, _, err := h.transactions.FindTransactions(c.Request.Context(), filter)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	csvContent, err := services.GenerateTransactionCSV(transactions)
	if err != nil {
		utils.Fail(c, utils.Internal("Failed to generate CSV").Wrap(err))
		return
	}

	filename := fmt.Sprintf("transactions_%s.csv", time.Now().Format("20060102150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv", csvContent)
}
