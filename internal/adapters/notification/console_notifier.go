package notification

import (
	"context"

	"go.uber.org/zap"
)

// ConsoleNotifier writes messages to the log instead of sending email
type ConsoleNotifier struct {
	log *zap.Logger
}

// NewConsoleNotifier creates a new console notifier
func NewConsoleNotifier(log *zap.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{log: log}
}

// Send logs the message
func (n *ConsoleNotifier) Send(ctx context.Context, to, subject, body string) error {
	n.log.Info("📧 Email",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
