package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"golden-elegance/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CSRFCookie = "csrftoken"
	CSRFHeader = "X-CSRFToken"
)

// CSRFMiddleware implements the double-submit cookie check used by the
// storefront script: safe requests receive a csrftoken cookie and unsafe
// requests must echo it in the X-CSRFToken header.
func CSRFMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(CSRFCookie)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			if token == "" {
				token = strings.ReplaceAll(uuid.NewString(), "-", "")
				c.SetSameSite(http.SameSiteLaxMode)
				c.SetCookie(CSRFCookie, token, 0, "/", "", secure, false)
			}
			c.Next()
			return
		}

		header := c.GetHeader(CSRFHeader)
		if token == "" || header == "" || subtle.ConstantTimeCompare([]byte(token), []byte(header)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Success: false,
				Message: "CSRF verification failed",
			})
			return
		}
		c.Next()
	}
}
