package services

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrSizeRequired    = errors.New("size is required")
	ErrSizeUnavailable = errors.New("size not offered for product")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrOTPNotFound     = errors.New("no valid otp")
	ErrOTPInvalid      = errors.New("otp mismatch")
	ErrOTPExhausted    = errors.New("otp attempts exhausted")
	ErrCartEmpty       = errors.New("cart is empty")
	ErrPaymentMethod   = errors.New("unsupported payment method")
	ErrOrderNotFound   = errors.New("order not found")
	ErrOrderForbidden  = errors.New("order belongs to another user")
)

// RateLimitError is returned when a new code is requested before the
// resend cooldown has elapsed.
type RateLimitError struct {
	Remaining int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("otp requested too soon, retry in %ds", e.Remaining)
}

// AttemptsError reports a wrong code while attempts remain.
type AttemptsError struct {
	Remaining int
}

func (e *AttemptsError) Error() string {
	return fmt.Sprintf("invalid otp, %d attempts remaining", e.Remaining)
}

func (e *AttemptsError) Unwrap() error {
	return ErrOTPInvalid
}

// UserMessage turns a service error into the text shown to shoppers.
func UserMessage(err error) string {
	var rateErr *RateLimitError
	var attemptsErr *AttemptsError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrProductNotFound):
		return "Product not found!"
	case errors.Is(err, ErrSizeRequired):
		return "Please select a size!"
	case errors.Is(err, ErrSizeUnavailable):
		return "Selected variant is unavailable."
	case errors.Is(err, ErrInvalidEmail):
		return "Please enter a valid email address."
	case errors.As(err, &rateErr):
		return fmt.Sprintf("Please wait %d seconds before requesting another OTP.", rateErr.Remaining)
	case errors.Is(err, ErrOTPNotFound):
		return "No valid OTP found. Please request a new one."
	case errors.As(err, &attemptsErr):
		return fmt.Sprintf("Invalid OTP. %d attempts remaining.", attemptsErr.Remaining)
	case errors.Is(err, ErrOTPExhausted):
		return "Maximum verification attempts exceeded. Please request a new OTP."
	case errors.Is(err, ErrCartEmpty):
		return "Cart is empty."
	case errors.Is(err, ErrPaymentMethod):
		return "Please choose a valid payment method."
	case errors.Is(err, ErrOrderNotFound):
		return "Order not found."
	case errors.Is(err, ErrOrderForbidden):
		return "You do not have access to this order."
	default:
		return "Something went wrong. Please try again."
	}
}
