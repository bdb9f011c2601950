package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"golden-elegance/models"
	"golden-elegance/repositories"
	"golden-elegance/ui"
	"golden-elegance/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	OTPExpiry         = 10 * time.Minute
	OTPResendCooldown = ui.ResendCooldown * time.Second
	OTPMaxAttempts    = 5
)

// OTPMailer delivers a login code to the shopper.
type OTPMailer interface {
	SendOTP(ctx context.Context, email, code string, expiryMinutes int) error
}

type AuthService struct {
	otpRepo   repositories.OTPRepository
	mailer    OTPMailer
	jwtSecret string
	jwtExpiry time.Duration
	log       *zap.Logger

	now      func() time.Time
	generate func() (string, error)
}

func NewAuthService(otpRepo repositories.OTPRepository, mailer OTPMailer, jwtSecret string, jwtExpiry time.Duration, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		otpRepo:   otpRepo,
		mailer:    mailer,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
		log:       log,
		now:       time.Now,
		generate:  generateOTP,
	}
}

var validate = validator.New()

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateOTP returns a uniformly random zero-padded 4-digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

// RequestOTP issues a new login code for email, superseding any earlier
// one, and mails it.
func (s *AuthService) RequestOTP(ctx context.Context, email, ip string) (models.OTPSentResponse, error) {
	email = normalizeEmail(email)
	if err := validate.Var(email, "required,email"); err != nil {
		return models.OTPSentResponse{}, ErrInvalidEmail
	}

	now := s.now()
	latest, err := s.otpRepo.Latest(ctx, email)
	if err != nil {
		return models.OTPSentResponse{}, err
	}
	if latest != nil {
		if elapsed := now.Sub(latest.CreatedAt); elapsed < OTPResendCooldown {
			remaining := int((OTPResendCooldown - elapsed + time.Second - 1) / time.Second)
			return models.OTPSentResponse{}, &RateLimitError{Remaining: remaining}
		}
	}

	code, err := s.generate()
	if err != nil {
		return models.OTPSentResponse{}, fmt.Errorf("failed to generate otp: %w", err)
	}
	hash, err := utils.HashSecret(code)
	if err != nil {
		return models.OTPSentResponse{}, fmt.Errorf("failed to hash otp: %w", err)
	}

	rec := &models.OTPRecord{
		Email:     email,
		Hash:      hash,
		IPAddress: ip,
		ExpiresAt: now.Add(OTPExpiry),
		CreatedAt: now,
	}
	if err := s.otpRepo.Replace(ctx, rec); err != nil {
		return models.OTPSentResponse{}, err
	}
	s.log.Info("otp issued", zap.String("email", email), zap.Int64("otp_id", rec.ID))

	if err := s.mailer.SendOTP(ctx, email, code, int(OTPExpiry/time.Minute)); err != nil {
		return models.OTPSentResponse{}, fmt.Errorf("failed to send otp email: %w", err)
	}

	return models.OTPSentResponse{
		Email:         email,
		ExpiryMinutes: int(OTPExpiry / time.Minute),
		ResendAfter:   ui.ResendCooldown,
	}, nil
}

// VerifyOTP checks code against the latest unused code for email and
// returns a session token on success. Every check counts as an attempt.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (models.LoginResponse, error) {
	email = normalizeEmail(email)
	now := s.now()

	rec, err := s.otpRepo.Latest(ctx, email)
	if err != nil {
		return models.LoginResponse{}, err
	}
	if rec == nil || !rec.IsValid(now) {
		return models.LoginResponse{}, ErrOTPNotFound
	}

	if rec.Attempts >= OTPMaxAttempts {
		rec.Used = true
		if err := s.otpRepo.Update(ctx, rec); err != nil {
			return models.LoginResponse{}, err
		}
		return models.LoginResponse{}, ErrOTPExhausted
	}

	rec.Attempts++
	ok, err := utils.VerifySecret(rec.Hash, strings.TrimSpace(code))
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("failed to verify otp: %w", err)
	}
	if !ok {
		remaining := OTPMaxAttempts - rec.Attempts
		if remaining <= 0 {
			rec.Used = true
		}
		if err := s.otpRepo.Update(ctx, rec); err != nil {
			return models.LoginResponse{}, err
		}
		if remaining <= 0 {
			return models.LoginResponse{}, ErrOTPExhausted
		}
		return models.LoginResponse{}, &AttemptsError{Remaining: remaining}
	}

	rec.Used = true
	if err := s.otpRepo.Update(ctx, rec); err != nil {
		return models.LoginResponse{}, err
	}

	token, expiresAt, err := utils.GenerateToken(email, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return models.LoginResponse{}, err
	}
	s.log.Info("otp verified", zap.String("email", email))

	return models.LoginResponse{
		Token:     token,
		Email:     email,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

func (s *AuthService) ParseToken(token string) (*utils.Claims, error) {
	return utils.ValidateToken(token, s.jwtSecret)
}
