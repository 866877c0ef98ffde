package email

import (
	"context"
	"fmt"
	"log/slog"

	portssvc "github.com/sellerpulse/auth-backend/internal/core/ports/services"
)

// LogSender is the non-production transport: it logs the code instead of
// delivering it and returns a preview line, mirroring how dev mailboxes
// expose a preview URL.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

var _ portssvc.EmailSender = (*LogSender)(nil)

func (s *LogSender) SendOTP(ctx context.Context, to, code string, purpose portssvc.OTPPurpose) (string, error) {
	preview := fmt.Sprintf("dev://otp/%s/%s", purpose, to)
	s.logger.InfoContext(ctx, "OTP email (dev transport)",
		slog.String("to", to),
		slog.String("purpose", string(purpose)),
		slog.String("code", code),
	)
	return preview, nil
}
