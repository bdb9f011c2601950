package libs

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type SMTPMailer struct {
	dialer    *gomail.Dialer
	from      string
	storeName string
}

func NewSMTPMailer(host string, port int, user, pass, from, storeName string) *SMTPMailer {
	return &SMTPMailer{
		dialer:    gomail.NewDialer(host, port, user, pass),
		from:      from,
		storeName: storeName,
	}
}

func (m *SMTPMailer) SendOTP(ctx context.Context, email, code string, expiryMinutes int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Your One-Time Login Code")
	msg.SetBody("text/plain", OTPPlainBody(m.storeName, code, expiryMinutes))
	msg.AddAlternative("text/html", OTPHTMLBody(m.storeName, code, expiryMinutes))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func OTPPlainBody(storeName, code string, expiryMinutes int) string {
	return fmt.Sprintf(`Hello,

Your %s login code is: %s

This code will expire in %d minutes.
If you did not request this code, you can ignore this email.
`, storeName, code, expiryMinutes)
}

func OTPHTMLBody(storeName, code string, expiryMinutes int) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        .logo { font-size: 24px; font-weight: bold; color: #b8860b; text-align: center; }
        .otp-box { background-color: #fff8e7; border: 2px dashed #b8860b; padding: 20px; text-align: center; margin: 30px 0; border-radius: 8px; }
        .otp-code { font-size: 36px; font-weight: bold; color: #b8860b; letter-spacing: 8px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="logo">%s</div>
        <p>Use the following code to sign in:</p>
        <div class="otp-box"><div class="otp-code">%s</div></div>
        <p><strong>This code will expire in %d minutes.</strong></p>
        <p>If you did not request this code, please ignore this email.</p>
    </div>
</body>
</html>
`, storeName, code, expiryMinutes)
}

// LogMailer writes codes to the log instead of sending them. Used when SMTP
// is not configured.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogMailer{log: log}
}

func (m *LogMailer) SendOTP(_ context.Context, email, code string, expiryMinutes int) error {
	m.log.Info("otp email (smtp disabled)",
		zap.String("to", email),
		zap.String("code", code),
		zap.Int("expiry_minutes", expiryMinutes),
	)
	return nil
}
