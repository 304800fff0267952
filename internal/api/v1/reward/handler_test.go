package reward_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gcore-rewards-backend/internal/api/v1/reward"
	"gcore-rewards-backend/internal/chain/chaintest"
	"gcore-rewards-backend/internal/middleware"
	"gcore-rewards-backend/internal/models"
	"gcore-rewards-backend/internal/services"
	"gcore-rewards-backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	gateway *chaintest.Gateway
	router  *gin.Engine
	user    *models.User
}

func setup(t *testing.T) *fixture {
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	rdb, _ := testutil.NewTestRedis(t)
	gw := chaintest.New()

	user := &models.User{WalletAddress: "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Role: models.RoleUser, Status: models.UserStatusApproved}
	require.NoError(t, db.Create(user).Error)

	h := reward.NewHandler(
		services.NewRewardService(db),
		services.NewRedemptionService(db, gw, zap.NewNop()),
		services.NewIdempotencyStore(rdb, time.Minute),
	)

	r := gin.New()
	public := r.Group("/api")
	authorized := public.Group("", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, user.ID)
		c.Set(middleware.ContextRole, user.Role)
		c.Next()
	})
	h.RegisterRoutes(public, authorized)

	return &fixture{db: db, gateway: gw, router: r, user: user}
}

func (f *fixture) do(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestRedeem(t *testing.T) {
	f := setup(t)
	item := &models.Reward{Name: "Sticker", Cost: 25, Stock: 3, Category: "Accessories", IsActive: true}
	require.NoError(t, f.db.Create(item).Error)

	w := f.do(http.MethodPost, "/api/rewards/redeem", reward.RedeemRequest{RewardID: item.ID, Quantity: 2}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Success bool              `json:"success"`
		Data    models.Redemption `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(50), resp.Data.TotalCost)
	assert.NotEmpty(t, resp.Data.TxHash)

	var stored models.Reward
	require.NoError(t, f.db.First(&stored, "id = ?", item.ID).Error)
	assert.Equal(t, int64(1), stored.Stock)
	require.Len(t, f.gateway.Redeems, 1)
	assert.Equal(t, int64(2), f.gateway.Redeems[0].Quantity)
}

func TestRedeemErrors(t *testing.T) {
	f := setup(t)
	item := &models.Reward{Name: "Hoodie", Cost: 250, Stock: 1, Category: "Apparel", IsActive: true}
	require.NoError(t, f.db.Create(item).Error)

	tests := []struct {
		name    string
		body    interface{}
		status  int
		message string
	}{
		{"missing reward", map[string]interface{}{"quantity": 1}, http.StatusBadRequest, "Invalid request parameters"},
		{"zero quantity", map[string]interface{}{"rewardId": item.ID, "quantity": 0}, http.StatusBadRequest, "Invalid request parameters"},
		{"unknown reward", reward.RedeemRequest{RewardID: "5f0c3c8e-3b1a-4c55-9e55-2f1b8c0f9a11", Quantity: 1}, http.StatusNotFound, "Reward not found"},
		{"over stock", reward.RedeemRequest{RewardID: item.ID, Quantity: 2}, http.StatusBadRequest, "Insufficient stock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(http.MethodPost, "/api/rewards/redeem", tt.body, nil)
			assert.Equal(t, tt.status, w.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, false, resp["success"])
			assert.Equal(t, tt.message, resp["message"])
		})
	}

	assert.Empty(t, f.gateway.Redeems)
}

func TestRedeemIdempotencyKey(t *testing.T) {
	f := setup(t)
	item := &models.Reward{Name: "Mug", Cost: 50, Stock: 5, Category: "Accessories", IsActive: true}
	require.NoError(t, f.db.Create(item).Error)

	headers := map[string]string{middleware.IdempotencyHeader: "order-1"}
	body := reward.RedeemRequest{RewardID: item.ID, Quantity: 1}

	assert.Equal(t, http.StatusCreated, f.do(http.MethodPost, "/api/rewards/redeem", body, headers).Code)
	assert.Equal(t, http.StatusConflict, f.do(http.MethodPost, "/api/rewards/redeem", body, headers).Code)

	var stored models.Reward
	require.NoError(t, f.db.First(&stored, "id = ?", item.ID).Error)
	assert.Equal(t, int64(4), stored.Stock)
}

func TestListRewardsHidesInactiveFromUsers(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.db.Create(&models.Reward{Name: "Shirt", Cost: 100, Stock: 5, Category: "Apparel", IsActive: true}).Error)
	hidden := &models.Reward{Name: "Cap", Cost: 30, Stock: 5, Category: "Apparel", IsActive: true}
	require.NoError(t, f.db.Create(hidden).Error)
	require.NoError(t, f.db.Model(hidden).Update("is_active", false).Error)

	w := f.do(http.MethodGet, "/api/rewards?includeInactive=true", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data reward.RewardListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Rewards, 1)
	assert.Equal(t, "Shirt", resp.Data.Rewards[0].Name)
	assert.Equal(t, int64(1), resp.Data.Pagination.Total)
}
