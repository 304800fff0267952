package middleware

import (
	"net/http"

	"gcore-rewards-backend/internal/models"
	"gcore-rewards-backend/internal/services"
	"gcore-rewards-backend/internal/utils"
	"gcore-rewards-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminAuthMiddleware validates that the user has admin privileges.
func AdminAuthMiddleware(tokens *utils.TokenManager, denylist *services.TokenDenylist, users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, tokens, denylist, users) {
			return
		}

		if !CurrentRole(c).IsAdmin() {
			logger.Log.Warn("unauthorized admin access attempt",
				zap.String("user_id", CurrentUserID(c)),
				zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusForbidden, utils.NewErrorResponse("Forbidden: Admins only"))
			return
		}

		c.Next()
	}
}

// RequireSuperAdmin must run after AdminAuthMiddleware.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentRole(c) != models.RoleSuperAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.NewErrorResponse("Forbidden: Super admins only"))
			return
		}
		c.Next()
	}
}
