package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie     = "cart_session"
	sessionContextKey = "cart_session"
	sessionMaxAge     = 60 * 60 * 24 * 365
)

// SessionMiddleware gives every visitor a stable cart session id, issuing a
// cookie on the first request.
func SessionMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := c.Cookie(SessionCookie)
		if err != nil || uuid.Validate(session) != nil {
			session = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, session, sessionMaxAge, "/", "", secure, true)
		}
		c.Set(sessionContextKey, session)
		c.Next()
	}
}

func SessionID(c *gin.Context) string {
	return c.GetString(sessionContextKey)
}
