package handlers

import (
	"net/http"
	"pos_system/internal/models"
	"pos_system/internal/redis"

	"github.com/gin-gonic/gin"
)

const sessionContextKey = "session"

type AuthMiddleware struct {
	sessions   *redis.Client
	cookieName string
}

func NewAuthMiddleware(sessions *redis.Client, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, cookieName: cookieName}
}

// RequireAuth gates a route on a valid session cookie and stores the session
// in the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		session, err := m.sessions.GetSession(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// RequireAdmin gates a route on an admin session. Must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := currentSession(c)
		if session == nil || session.Role != string(models.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func currentSession(c *gin.Context) *redis.SessionData {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	session, ok := value.(*redis.SessionData)
	if !ok {
		return nil
	}
	return session
}
