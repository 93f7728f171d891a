package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blogify-backend/internal/shared/response"
	"blogify-backend/internal/shared/utils"
	"blogify-backend/pkg/jwt"
)

const (
	ctxUserID   = "userID"
	ctxUsername = "username"
	ctxEmail    = "email"
)

// AuthMiddleware rejects requests without a valid Bearer access token and
// stores the caller identity in the gin context.
func AuthMiddleware(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.Unauthorized(c, "missing or malformed authorization header")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "invalid user ID in token")
			c.Abort()
			return
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxUsername, claims.Username)
		c.Set(ctxEmail, claims.Email)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the caller identity when a token is present
// but lets anonymous requests through. Used by endpoints that serve published
// content to everyone (blog list, blog detail).
func OptionalAuthMiddleware(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(token)
		if err != nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		if userID := utils.ParseStringToUUID(claims.UserID); userID != uuid.Nil {
			c.Set(ctxUserID, userID)
			c.Set(ctxUsername, claims.Username)
			c.Set(ctxEmail, claims.Email)
		}
		c.Next()
	}
}

// GetUserID returns the authenticated caller's ID, or uuid.Nil for anonymous
// requests.
func GetUserID(c *gin.Context) uuid.UUID {
	if v, exists := c.Get(ctxUserID); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// GetUsername returns the authenticated caller's username ("" if anonymous).
func GetUsername(c *gin.Context) string {
	return c.GetString(ctxUsername)
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
