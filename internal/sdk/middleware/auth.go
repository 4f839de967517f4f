// Package middleware provides gin middleware for the profile service.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cinemahub/profile-service/internal/services/jwt"
)

// Context keys set by Authenticate.
const (
	ClaimsKey  = "claims"
	UserIDKey  = "user_id"
	IsAdminKey = "is_admin"
)

const bearerPrefix = "Bearer"

var ErrNoClaims = errors.New("middleware: no claims in context")

// Authenticate validates the bearer token and stores the claims in the
// request context. Missing header, malformed header, invalid token and
// expired token each produce a distinct error code so clients get a precise
// message.
func Authenticate(tokens *jwt.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "missing_authorization_header",
				"message": "Authorization header is missing.",
			})
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_authorization_header",
				"message": "Invalid Authorization header format. Expected 'Bearer <token>'.",
			})
			return
		}

		claims, err := tokens.ParseAccessToken(c.Request.Context(), parts[1])
		if err != nil {
			code, message := "invalid_token", "Invalid token."
			if errors.Is(err, jwt.ErrExpiredToken) {
				code, message = "expired_token", "Token has expired."
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   code,
				"message": message,
			})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, claims.UserID)
		c.Set(IsAdminKey, claims.IsAdmin)
		c.Next()
	}
}

// GetClaims extracts the verified claims set by Authenticate.
func GetClaims(c *gin.Context) (*jwt.Claims, error) {
	val, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, ErrNoClaims
	}

	claims, ok := val.(*jwt.Claims)
	if !ok {
		return nil, ErrNoClaims
	}

	return claims, nil
}

// GetUserID extracts the authenticated user id set by Authenticate.
func GetUserID(c *gin.Context) (int64, error) {
	claims, err := GetClaims(c)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}
