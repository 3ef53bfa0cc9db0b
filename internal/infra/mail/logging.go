package mail

import (
	"context"

	"go.uber.org/zap"

	"github.com/arklim/social-platform-reviews/internal/core/port"
	"github.com/arklim/social-platform-reviews/internal/infra/logger"
)

// LoggingMailer records outbound mail for observability without
// delivering it. Used in development when no relay is configured.
type LoggingMailer struct {
	logger *zap.Logger
}

// NewLoggingMailer constructs a mailer backed by structured logging.
func NewLoggingMailer(log *zap.Logger) *LoggingMailer {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingMailer{logger: log}
}

func (m *LoggingMailer) Send(_ context.Context, msg port.MailMessage) error {
	m.logger.Info("dispatch mail",
		zap.String("to", logger.MaskEmail(msg.To)),
		zap.String("subject", msg.Subject),
		zap.Int("body_bytes", len(msg.Body)),
	)
	return nil
}

var _ port.Mailer = (*LoggingMailer)(nil)
