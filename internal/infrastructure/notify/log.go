package notify

import (
	"btc-rate-monitor/internal/domain/interfaces"
	"btc-rate-monitor/internal/infrastructure/logging"
	"context"
)

var _ interfaces.Notifier = LogNotifier{}

// LogNotifier writes messages to the application log instead of a chat
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, recipientID int64, text string) error {
	logging.Info(ctx, "notification", logging.Fields{
		logging.FieldRecipient: recipientID,
		"message":              text,
	})
	return nil
}
