package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/side105/devconnector/internal/models"
	"github.com/side105/devconnector/internal/repository"
	"github.com/side105/devconnector/internal/token"
)

// UserKey is the gin context key under which Auth stores the
// authenticated *models.User.
const UserKey = "user"

// Auth creates a Gin middleware for bearer token authentication. The
// claimed identity is resolved against the user store on every request;
// a token for a user that no longer exists is rejected rather than let
// through without a user attached.
func Auth(tokens *token.Service, users repository.UserRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer <token>"})
			c.Abort()
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			if errors.Is(err, token.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
				c.Abort()
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.ID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
				c.Abort()
				return
			}
			logger.Error("Failed to resolve token user", zap.String("id", claims.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to authenticate"})
			c.Abort()
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by Auth. Only
// valid on routes behind the Auth middleware.
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(UserKey).(*models.User)
}
