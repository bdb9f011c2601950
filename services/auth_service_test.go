package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golden-elegance/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) SendOTP(_ context.Context, email, code string, expiryMinutes int) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email+":"+code)
	return nil
}

type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time {
	return c.t
}

func (c *testClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeMailer, *testClock) {
	t.Helper()
	mailer := &fakeMailer{}
	clock := &testClock{t: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
	svc := NewAuthService(repositories.NewMemoryOTPRepository(), mailer, "test-secret", time.Hour, nil)
	svc.now = clock.now
	svc.generate = func() (string, error) { return "4821", nil }
	return svc, mailer, clock
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateOTP()
		require.NoError(t, err)
		assert.Regexp(t, `^\d{4}$`, code)
	}
}

func TestAuthService_RequestAndVerify(t *testing.T) {
	ctx := context.Background()
	svc, mailer, _ := newTestAuthService(t)

	sent, err := svc.RequestOTP(ctx, "  Shopper@Example.com ", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "shopper@example.com", sent.Email)
	assert.Equal(t, 10, sent.ExpiryMinutes)
	assert.Equal(t, 60, sent.ResendAfter)
	assert.Equal(t, []string{"shopper@example.com:4821"}, mailer.sent)

	login, err := svc.VerifyOTP(ctx, "shopper@example.com", "4821")
	require.NoError(t, err)
	assert.Equal(t, "shopper@example.com", login.Email)
	assert.NotEmpty(t, login.Token)

	claims, err := svc.ParseToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, "shopper@example.com", claims.Email)

	// a code works once
	_, err = svc.VerifyOTP(ctx, "shopper@example.com", "4821")
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestAuthService_RequestOTP_InvalidEmail(t *testing.T) {
	svc, mailer, _ := newTestAuthService(t)

	for _, email := range []string{"", "plain", "a@@b.co", "a b@c.de", "@example.com"} {
		_, err := svc.RequestOTP(context.Background(), email, "")
		assert.ErrorIs(t, err, ErrInvalidEmail, email)
	}
	assert.Empty(t, mailer.sent)
}

func TestAuthService_RequestOTP_Cooldown(t *testing.T) {
	ctx := context.Background()
	svc, mailer, clock := newTestAuthService(t)

	_, err := svc.RequestOTP(ctx, "a@b.co", "")
	require.NoError(t, err)

	clock.advance(20*time.Second + 500*time.Millisecond)
	_, err = svc.RequestOTP(ctx, "a@b.co", "")
	var rateErr *RateLimitError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, 40, rateErr.Remaining)
	assert.Equal(t, "Please wait 40 seconds before requesting another OTP.", UserMessage(err))

	clock.advance(40 * time.Second)
	_, err = svc.RequestOTP(ctx, "a@b.co", "")
	require.NoError(t, err)
	assert.Len(t, mailer.sent, 2)
}

func TestAuthService_NewCodeSupersedesOld(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newTestAuthService(t)

	_, err := svc.RequestOTP(ctx, "a@b.co", "")
	require.NoError(t, err)

	clock.advance(time.Minute)
	svc.generate = func() (string, error) { return "1111", nil }
	_, err = svc.RequestOTP(ctx, "a@b.co", "")
	require.NoError(t, err)

	_, err = svc.VerifyOTP(ctx, "a@b.co", "4821")
	var attemptsErr *AttemptsError
	require.ErrorAs(t, err, &attemptsErr)

	_, err = svc.VerifyOTP(ctx, "a@b.co", "1111")
	assert.NoError(t, err)
}

func TestAuthService_VerifyOTP_Expired(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newTestAuthService(t)

	_, err := svc.RequestOTP(ctx, "a@b.co", "")
	require.NoError(t, err)

	clock.advance(10 * time.Minute)
	_, err = svc.VerifyOTP(ctx, "a@b.co", "4821")
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestAuthService_VerifyOTP_Attempts(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService(t)

	_, err := svc.RequestOTP(ctx, "a@b.co", "")
	require.NoError(t, err)

	for remaining := 4; remaining >= 1; remaining-- {
		_, err = svc.VerifyOTP(ctx, "a@b.co", "0000")
		var attemptsErr *AttemptsError
		require.ErrorAs(t, err, &attemptsErr)
		assert.Equal(t, remaining, attemptsErr.Remaining)
		assert.ErrorIs(t, err, ErrOTPInvalid)
	}

	_, err = svc.VerifyOTP(ctx, "a@b.co", "0000")
	assert.ErrorIs(t, err, ErrOTPExhausted)

	// even the right code is refused afterwards
	_, err = svc.VerifyOTP(ctx, "a@b.co", "4821")
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestAuthService_VerifyOTP_Unknown(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.VerifyOTP(context.Background(), "nobody@b.co", "1234")
	assert.ErrorIs(t, err, ErrOTPNotFound)
}

func TestAuthService_RequestOTP_MailFailure(t *testing.T) {
	svc, mailer, _ := newTestAuthService(t)
	mailer.err = errors.New("smtp down")

	_, err := svc.RequestOTP(context.Background(), "a@b.co", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Product not found!", UserMessage(ErrProductNotFound))
	assert.Equal(t, "Please select a size!", UserMessage(ErrSizeRequired))
	assert.Equal(t, "Invalid OTP. 2 attempts remaining.", UserMessage(&AttemptsError{Remaining: 2}))
	assert.Equal(t, "Something went wrong. Please try again.", UserMessage(errors.New("boom")))
	assert.Empty(t, UserMessage(nil))
}
