package middleware

import (
	"context"
	"net/http"

	"gcore-rewards-backend/internal/services"
	"gcore-rewards-backend/internal/utils"
	"gcore-rewards-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const IdempotencyHeader = "Idempotency-Key"

// Idempotency makes writes that carry an Idempotency-Key header run at most
// once per key. The key is released when the handler does not succeed so the
// client can retry, unless the failure came after a chain write. Requests
// without the header pass through.
func Idempotency(store *services.IdempotencyStore, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" || store == nil {
			c.Next()
			return
		}

		// Keys are per caller so two users cannot collide.
		if userID := CurrentUserID(c); userID != "" {
			key = userID + ":" + key
		}

		ctx := c.Request.Context()
		reserved, err := store.Reserve(ctx, scope, key)
		if err != nil {
			logger.Log.Error("idempotency reserve failed", zap.String("scope", scope), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to check request status"))
			return
		}
		if !reserved {
			c.AbortWithStatusJSON(http.StatusConflict, utils.NewErrorResponse("Duplicate request"))
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusMultipleChoices && !c.GetBool(utils.ContextCommitted) {
			// The client may have gone away; the release must still land.
			if err := store.Release(context.WithoutCancel(ctx), scope, key); err != nil {
				logger.Log.Warn("idempotency release failed", zap.String("scope", scope), zap.Error(err))
			}
		}
	}
}
