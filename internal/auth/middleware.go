package auth

import (
	"strings"

	"socialfeed/backend/internal/apperr"

	"github.com/gin-gonic/gin"
)

const (
	// CookieName is the HTTP-only cookie that carries the session token.
	CookieName = "token"
	// UserIDKey holds the authenticated user's ID in the gin context.
	UserIDKey = "userID"
	// CurrentUserKey holds the loaded *models.User once CurrentUserMiddleware ran.
	CurrentUserKey = "currentUser"
)

// Authenticator resolves a session token to a user ID.
type Authenticator interface {
	Authenticate(token string) (string, error)
}

// TokenFromRequest reads the session cookie, falling back to a Bearer header.
func TokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(CookieName); err == nil && token != "" {
		return token
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// AuthMiddleware rejects requests without a valid session token and stores the
// user ID under UserIDKey.
func AuthMiddleware(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := authn.Authenticate(TokenFromRequest(c))
		if err != nil {
			c.AbortWithStatusJSON(apperr.HTTPStatus(apperr.KindOf(err)), gin.H{"error": apperr.Message(err)})
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// UserID returns the ID set by AuthMiddleware.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
