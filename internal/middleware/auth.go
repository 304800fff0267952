package middleware

import (
	"errors"
	"net/http"

	"gcore-rewards-backend/internal/models"
	"gcore-rewards-backend/internal/services"
	"gcore-rewards-backend/internal/utils"
	"gcore-rewards-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextUserID = "userID"
	ContextWallet = "walletAddress"
	ContextRole   = "role"
	ContextClaims = "claims"
	ContextToken  = "token"
)

// AuthMiddleware requires a valid, non-revoked bearer token whose user still
// exists. Role and wallet come from the stored user, not the token, so a
// demotion takes effect on the next request.
func AuthMiddleware(tokens *utils.TokenManager, denylist *services.TokenDenylist, users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c, tokens, denylist, users) {
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid token is present
// and lets anonymous requests through otherwise.
func OptionalAuth(tokens *utils.TokenManager, denylist *services.TokenDenylist, users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := utils.ExtractToken(c)
		if err != nil {
			c.Next()
			return
		}
		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			c.Next()
			return
		}
		if denylist != nil {
			if revoked, err := denylist.IsDenylisted(c.Request.Context(), tokenString); err != nil || revoked {
				c.Next()
				return
			}
		}
		user, err := users.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.Next()
			return
		}
		setIdentity(c, tokenString, claims, user)
		c.Next()
	}
}

// authenticate writes the error response and aborts when the request carries
// no usable token.
func authenticate(c *gin.Context, tokens *utils.TokenManager, denylist *services.TokenDenylist, users *services.UserService) bool {
	tokenString, err := utils.ExtractToken(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utils.NewErrorResponse(err.Error()))
		return false
	}

	if denylist != nil {
		revoked, err := denylist.IsDenylisted(c.Request.Context(), tokenString)
		if err != nil {
			logger.Log.Error("denylist lookup failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to check token status"))
			return false
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.NewErrorResponse("Token has been revoked"))
			return false
		}
	}

	claims, err := tokens.ValidateToken(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, utils.NewErrorResponse("Invalid or expired token"))
		return false
	}

	user, err := users.FindByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.NewErrorResponse("User no longer exists"))
			return false
		}
		logger.Log.Error("user lookup failed", zap.String("user_id", claims.UserID), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to load user"))
		return false
	}

	setIdentity(c, tokenString, claims, user)
	return true
}

func setIdentity(c *gin.Context, tokenString string, claims *utils.Claims, user *models.User) {
	c.Set(ContextToken, tokenString)
	c.Set(ContextClaims, claims)
	c.Set(ContextUserID, user.ID)
	c.Set(ContextWallet, user.WalletAddress)
	c.Set(ContextRole, user.Role)
}

// CurrentUserID returns the authenticated user's id, or "" for anonymous requests.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func CurrentRole(c *gin.Context) models.Role {
	role, _ := c.Get(ContextRole)
	r, _ := role.(models.Role)
	return r
}

func CurrentClaims(c *gin.Context) *utils.Claims {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*utils.Claims)
	return claims
}

func CurrentToken(c *gin.Context) string {
	return c.GetString(ContextToken)
}
