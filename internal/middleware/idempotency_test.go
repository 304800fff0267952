package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gcore-rewards-backend/internal/services"
	"gcore-rewards-backend/internal/testutil"
	"gcore-rewards-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestIdempotency(t *testing.T) {
	gin.SetMode(gin.TestMode)
	client, _ := testutil.NewTestRedis(t)
	store := services.NewIdempotencyStore(client, time.Minute)

	status := http.StatusOK
	calls := 0
	r := gin.New()
	r.POST("/redeem", Idempotency(store, "redeem"), func(c *gin.Context) {
		calls++
		c.Status(status)
	})

	do := func(key string) int {
		req, _ := http.NewRequest(http.MethodPost, "/redeem", nil)
		if key != "" {
			req.Header.Set(IdempotencyHeader, key)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("k1"))
	assert.Equal(t, http.StatusConflict, do("k1"))
	assert.Equal(t, 1, calls)

	assert.Equal(t, http.StatusOK, do(""))
	assert.Equal(t, http.StatusOK, do(""))
	assert.Equal(t, 3, calls)

	status = http.StatusBadRequest
	assert.Equal(t, http.StatusBadRequest, do("k2"))
	status = http.StatusOK
	assert.Equal(t, http.StatusOK, do("k2"))
	assert.Equal(t, 5, calls)
}

func TestIdempotencyKeepsKeyAfterCommittedFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	client, _ := testutil.NewTestRedis(t)
	store := services.NewIdempotencyStore(client, time.Minute)

	calls := 0
	r := gin.New()
	r.POST("/redeem", Idempotency(store, "redeem"), func(c *gin.Context) {
		calls++
		utils.Fail(c, &services.LedgerLagError{
			TxHash: "0xfeed",
			Err:    services.ErrLedgerLag.Wrap(errors.New("disk full")),
		})
	})

	do := func() int {
		req, _ := http.NewRequest(http.MethodPost, "/redeem", nil)
		req.Header.Set(IdempotencyHeader, "k1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusInternalServerError, do())
	assert.Equal(t, http.StatusConflict, do(), "the chain write already happened")
	assert.Equal(t, 1, calls)
}

func TestIdempotencyReleasesAfterClientCancels(t *testing.T) {
	gin.SetMode(gin.TestMode)
	client, _ := testutil.NewTestRedis(t)
	store := services.NewIdempotencyStore(client, time.Minute)

	calls := 0
	r := gin.New()
	r.POST("/redeem", Idempotency(store, "redeem"), func(c *gin.Context) {
		calls++
		if cancel, ok := c.Request.Context().Value(cancelKey{}).(context.CancelFunc); ok {
			cancel()
		}
		utils.Fail(c, services.ErrChainFailure)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx = context.WithValue(ctx, cancelKey{}, cancel)

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, "/redeem", nil)
	req.Header.Set(IdempotencyHeader, "k1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	req, _ = http.NewRequest(http.MethodPost, "/redeem", nil)
	req.Header.Set(IdempotencyHeader, "k1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 2, calls, "the key was released although the first client went away")
}

type cancelKey struct{}
