package controllers

import (
	"errors"
	"net/http"

	"golden-elegance/middleware"
	"golden-elegance/models"
	"golden-elegance/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthController struct {
	authService *services.AuthService
	cartService *services.CartService
	log         *zap.Logger
}

func NewAuthController(authService *services.AuthService, cartService *services.CartService, log *zap.Logger) *AuthController {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthController{authService: authService, cartService: cartService, log: log}
}

// RequestOTP godoc
// @Summary Request login code
// @Description Email a 4-digit one-time login code. One request per email per minute.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.OTPRequest true "OTP Request"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /auth/otp/request [post]
func (ctrl *AuthController) RequestOTP(c *gin.Context) {
	var req models.OTPRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid request", Error: err.Error()})
		return
	}

	sent, err := ctrl.authService.RequestOTP(c.Request.Context(), req.Email, c.ClientIP())
	if err != nil {
		var rateErr *services.RateLimitError
		switch {
		case errors.Is(err, services.ErrInvalidEmail):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: services.UserMessage(err)})
		case errors.As(err, &rateErr):
			c.JSON(http.StatusTooManyRequests, models.ErrorResponse{Success: false, Message: services.UserMessage(err)})
		default:
			ctrl.log.Error("otp request failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Success: false,
				Message: "Failed to send OTP. Please try again.",
			})
		}
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "OTP sent to your email.",
		Data:    sent,
	})
}

// VerifyOTP godoc
// @Summary Verify login code
// @Description Exchange a valid code for a bearer token. Five attempts per code. The session cart is merged into the user's cart.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.OTPVerifyRequest true "Verify Request"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/otp/verify [post]
func (ctrl *AuthController) VerifyOTP(c *gin.Context) {
	var req models.OTPVerifyRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid request", Error: err.Error()})
		return
	}
	if len(req.OTP) != 4 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Please enter a valid 4-digit OTP"})
		return
	}

	login, err := ctrl.authService.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		var attemptsErr *services.AttemptsError
		if errors.Is(err, services.ErrOTPNotFound) || errors.Is(err, services.ErrOTPExhausted) || errors.As(err, &attemptsErr) {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Success: false, Message: services.UserMessage(err)})
			return
		}
		ctrl.log.Error("otp verification failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Verification failed. Please try again."})
		return
	}

	if ctrl.cartService != nil {
		if _, err := ctrl.cartService.MergeCarts(c.Request.Context(), middleware.SessionID(c), middleware.UserOwner(login.Email)); err != nil {
			ctrl.log.Warn("cart merge failed", zap.String("email", login.Email), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "OTP verified successfully.",
		Data:    login,
	})
}

// GetMe godoc
// @Summary Current user
// @Tags Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/me [get]
func (ctrl *AuthController) GetMe(c *gin.Context) {
	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Authenticated",
		Data:    gin.H{"email": c.GetString("user_email")},
	})
}
