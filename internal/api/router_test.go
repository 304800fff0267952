package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gcore-rewards-backend/internal/api"
	"gcore-rewards-backend/internal/chain/chaintest"
	"gcore-rewards-backend/internal/models"
	"gcore-rewards-backend/internal/services"
	"gcore-rewards-backend/internal/testutil"
	"gcore-rewards-backend/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) (*gin.Engine, *miniredis.Miniredis) {
	r, mr, _ := newRouterWithUsers(t)
	return r, mr
}

func newRouterWithUsers(t *testing.T) (*gin.Engine, *miniredis.Miniredis, *services.UserService) {
	gin.SetMode(gin.TestMode)

	db := testutil.NewTestDB(t)
	rdb, mr := testutil.NewTestRedis(t)
	gw := chaintest.New()
	log := zap.NewNop()

	tokens := utils.NewTokenManager("router-test-secret", time.Hour)
	denylist := services.NewTokenDenylist(rdb)
	users := services.NewUserService(db, rdb)
	distribution := services.NewDistributionService(db, users, gw, log)

	return api.NewRouter(api.Deps{
		DB:            db,
		Redis:         rdb,
		Gateway:       gw,
		Tokens:        tokens,
		Denylist:      denylist,
		Idempotency:   services.NewIdempotencyStore(rdb, time.Minute),
		CORSOrigins:   []string{"http://localhost:3000"},
		Auth:          services.NewAuthService(users, tokens, denylist),
		Users:         users,
		Distribution:  distribution,
		Redemptions:   services.NewRedemptionService(db, gw, log),
		Rewards:       services.NewRewardService(db),
		Leaderboard:   services.NewLeaderboardService(db, gw, log),
		Transactions:  services.NewTransactionService(db),
		Notifications: services.NewNotificationService(db),
		Events:        services.NewEventService(db, distribution, log),
	}), mr, users
}

func call(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, mr := newRouter(t)

	w := call(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"OK","data":{"database":"ok","redis":"ok"}}`, w.Body.String())

	mr.Close()
	w = call(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":"unavailable"`)
}

func TestSessionLifecycle(t *testing.T) {
	r, _ := newRouter(t)

	w := call(r, http.MethodPost, "/api/auth/connect", "", map[string]string{
		"walletAddress": "0xAbCdEfAbCdEfAbCdEfAbCdEfAbCdEfAbCdEfAbCd",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var connect struct {
		Data struct {
			Token string `json:"token"`
			User  struct {
				WalletAddress string `json:"walletAddress"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &connect))
	require.NotEmpty(t, connect.Data.Token)
	assert.Equal(t, "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd", connect.Data.User.WalletAddress)
	token := connect.Data.Token

	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/auth/me", token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodGet, "/api/auth/me", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, call(r, http.MethodGet, "/api/admin/transactions", token, nil).Code)

	assert.Equal(t, http.StatusOK, call(r, http.MethodPost, "/api/auth/logout", token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodGet, "/api/auth/me", token, nil).Code)
}

func TestPublicRoutesAllowAnonymous(t *testing.T) {
	r, _ := newRouter(t)

	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/rewards", "", nil).Code)
	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/leaderboard", "", nil).Code)
	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/transactions/public", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodGet, "/api/transactions", "", nil).Code)
}

func TestAdminRoutesFollowStoredRole(t *testing.T) {
	r, _, users := newRouterWithUsers(t)
	ctx := context.Background()

	w := call(r, http.MethodPost, "/api/auth/connect", "", map[string]string{
		"walletAddress": "0x1234567890123456789012345678901234567890",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var connect struct {
		Data struct {
			Token string `json:"token"`
			User  struct {
				ID string `json:"id"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &connect))
	token, id := connect.Data.Token, connect.Data.User.ID

	// Fill the user cache so the role changes below must invalidate it.
	require.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/auth/me", token, nil).Code)

	_, err := users.UpdateRole(ctx, models.RoleSuperAdmin, id, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/admin/transactions", token, nil).Code)

	_, err = users.UpdateRole(ctx, models.RoleSuperAdmin, id, models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, call(r, http.MethodGet, "/api/admin/transactions", token, nil).Code)
}
