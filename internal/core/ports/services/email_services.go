package services

import "context"

// EmailSender dispatches one-time codes to users. Transport (SMTP, dev log
// preview) is an implementation concern; the orchestrator only needs the
// capability. previewURL is empty for real transports.
type EmailSender interface {
	SendOTP(ctx context.Context, email, code string, purpose OTPPurpose) (previewURL string, err error)
}
