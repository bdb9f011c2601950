package middleware

import (
	"errors"
	"net/http"
	"strings"

	"golden-elegance/models"
	"golden-elegance/utils"

	"github.com/gin-gonic/gin"
)

const userOwnerPrefix = "user:"

var (
	errMissingHeader = errors.New("authorization header required")
	errHeaderFormat  = errors.New("invalid authorization header format")
)

func bearerClaims(c *gin.Context, jwtSecret string) (*utils.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errMissingHeader
	}
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return nil, errHeaderFormat
	}
	return utils.ValidateToken(tokenParts[1], jwtSecret)
}

func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := bearerClaims(c, jwtSecret)
		switch {
		case errors.Is(err, errMissingHeader):
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Authorization header required",
			})
			return
		case errors.Is(err, errHeaderFormat):
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Invalid authorization header format",
			})
			return
		case err != nil:
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Success: false,
				Message: "Invalid or expired token",
				Error:   err.Error(),
			})
			return
		}

		c.Set("user_email", claims.Email)
		c.Next()
	}
}

// OptionalAuthMiddleware records the signed-in user when a valid bearer
// token is present and lets anonymous requests through untouched.
func OptionalAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := bearerClaims(c, jwtSecret); err == nil {
			c.Set("user_email", claims.Email)
		}
		c.Next()
	}
}

// UserOwner is the cart owner id of a signed-in user.
func UserOwner(email string) string {
	return userOwnerPrefix + email
}

// CartOwner picks the cart a request works on: the user's cart when signed
// in, the session cart otherwise.
func CartOwner(c *gin.Context) string {
	if email := c.GetString("user_email"); email != "" {
		return UserOwner(email)
	}
	return SessionID(c)
}
