// Package email provides EmailSender implementations. The orchestrator only
// sees the port; which transport is wired happens at the composition root,
// there is no package-level transporter state.
package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	portssvc "github.com/sellerpulse/auth-backend/internal/core/ports/services"
	"github.com/sellerpulse/auth-backend/internal/platform/config"
)

// SMTPSender delivers OTP mail over plain SMTP with AUTH PLAIN.
type SMTPSender struct {
	host string
	port string
	user string
	pass string
	from string
}

// NewSMTPSender builds a sender from config.
func NewSMTPSender(cfg *config.Config) *SMTPSender {
	return &SMTPSender{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: cfg.SMTPFrom,
	}
}

var _ portssvc.EmailSender = (*SMTPSender)(nil)

// SendOTP delivers the code to the recipient. SMTP has no preview URLs, so
// the first return value is always empty.
func (s *SMTPSender) SendOTP(ctx context.Context, to, code string, purpose portssvc.OTPPurpose) (string, error) {
	subject := verificationSubject()
	body := verificationBody(code)
	if purpose == portssvc.OTPPurposePasswordReset {
		subject = passwordResetSubject()
		body = passwordResetBody(code)
	}

	msg := strings.Join([]string{
		"From: " + s.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	// net/smtp has no context support; the dial uses the platform default
	// timeout.
	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg)); err != nil {
		return "", fmt.Errorf("failed to send %s email to %s: %w", purpose, to, err)
	}
	return "", nil
}
