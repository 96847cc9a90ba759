package middleware

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"fintrack-api/models"
	"fintrack-api/utils"

	"github.com/gin-gonic/gin"
)

const userContextKey = "currentUser"

// AuthMiddleware validates the Authorization header, resolves the token's
// subject to a user row and stores it in the request context. Every failure
// short-circuits with 401 before the handler runs.
func AuthMiddleware(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is missing or header is malformed"})
			c.Abort()
			return
		}

		userID, err := utils.ParseAccessToken(tokenString)
		if err != nil {
			if errors.Is(err, utils.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is invalid"})
			}
			c.Abort()
			return
		}

		var user models.User
		var totpSecret sql.NullString
		err = db.QueryRow(`
			SELECT id, username, password_hash, totp_secret, totp_enabled, created_at
			FROM users
			WHERE id = $1
		`, userID).Scan(&user.ID, &user.Username, &user.PasswordHash, &totpSecret, &user.TOTPEnabled, &user.CreatedAt)

		if err == sql.ErrNoRows {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found for this token"})
			c.Abort()
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			c.Abort()
			return
		}
		user.TOTPSecret = totpSecret.String

		c.Set(userContextKey, &user)
		c.Next()
	}
}

// extractBearerToken returns the token from a "Bearer <token>" header, or
// "" when the header is absent or malformed. The scheme check is
// case-insensitive.
func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// GetUser returns the authenticated user placed by AuthMiddleware, or nil.
func GetUser(c *gin.Context) *models.User {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetUserID returns the authenticated user's id, or "".
func GetUserID(c *gin.Context) string {
	user := GetUser(c)
	if user == nil {
		return ""
	}
	return user.ID
}
