package interfaces

import (
	"btc-rate-monitor/internal/domain/entities"
	"context"
)

// Notifier delivers a text message to one chat recipient
type Notifier interface {
	Notify(ctx context.Context, recipientID int64, text string) error
}

// AlertPublisher fans movement alerts out to live subscribers
type AlertPublisher interface {
	Publish(alert entities.MovementAlert)
}
