package transaction_test

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gcore-rewards-backend/internal/api/v1/admin/transaction"
	"gcore-rewards-backend/internal/models"
	"gcore-rewards-backend/internal/services"
	"gcore-rewards-backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewTestDB(t)

	r := gin.New()
	transaction.NewHandler(services.NewTransactionService(db)).RegisterRoutes(r.Group("/api/admin"))
	return r, db
}

func seed(t *testing.T, db *gorm.DB) *models.User {
	user := &models.User{WalletAddress: "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Role: models.RoleUser, Status: models.UserStatusApproved}
	require.NoError(t, db.Create(user).Error)
	for _, txn := range []models.Transaction{
		{UserID: user.ID, Amount: 100, Type: models.TransactionEarn, Status: models.TransactionCompleted, Description: "workshop"},
		{UserID: user.ID, Amount: 30, Type: models.TransactionRedeem, Status: models.TransactionCompleted, Description: "mug"},
		{UserID: user.ID, Amount: 5, Type: models.TransactionEarn, Status: models.TransactionFailed, Description: "retry"},
	} {
		txn := txn
		require.NoError(t, db.Create(&txn).Error)
	}
	return user
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListTransactions(t *testing.T) {
	r, db := setup(t)
	seed(t, db)

	w := get(r, "/api/admin/transactions?type=EARN&min_amount=10")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data transaction.TransactionListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Data.Total)
	require.Len(t, resp.Data.Transactions, 1)
	assert.Equal(t, int64(100), resp.Data.Transactions[0].Amount)
	assert.Equal(t, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", resp.Data.Transactions[0].WalletAddress)
}

func TestListTransactionsInvalidFilters(t *testing.T) {
	r, _ := setup(t)

	tests := []struct {
		query   string
		message string
	}{
		{"type=GIFT", "Invalid type"},
		{"status=DONE", "Invalid status"},
		{"start_time=yesterday", "Invalid start_time format"},
		{"max_amount=lots", "Invalid max_amount"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := get(r, "/api/admin/transactions?"+tt.query)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.message, resp["message"])
		})
	}
}

func TestExportTransactions(t *testing.T) {
	r, db := setup(t)
	seed(t, db)

	w := get(r, "/api/admin/transactions/export?status=COMPLETED")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment; filename=transactions_")

	records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 3)
}
