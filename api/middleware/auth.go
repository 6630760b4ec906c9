package middleware

import (
	"errors"
	"net/http"
	"strings"

	"example.com/acgl/services/inventory/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// contextKey is a type for context keys
type contextKey string

// IdentityContextKey is where SessionAuth stores the authenticated identity.
const IdentityContextKey contextKey = "identity"

// extractToken pulls the session token from the cookie or, for API clients,
// the Authorization header.
func extractToken(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// SessionAuth gates mutating routes: the request must carry a token that
// resolves to a live session, and the identity is attached to the context
// before the handler runs.
func SessionAuth(sessions session.Store, cookieName string, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, cookieName)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		identity, err := sessions.Get(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				log.WithError(err).Error("Session lookup failed")
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		c.Set(string(IdentityContextKey), identity)
		c.Next()
	}
}

// IdentityFromContext retrieves the authenticated identity from the context
func IdentityFromContext(c *gin.Context) (*session.Identity, error) {
	val, exists := c.Get(string(IdentityContextKey))
	if !exists {
		return nil, errors.New("identity not found in context")
	}

	identity, ok := val.(*session.Identity)
	if !ok {
		return nil, errors.New("identity in context has incorrect type")
	}
	return identity, nil
}
