package interfaces

import (
	"context"

	"github.com/m-mizutani/xlrbot/pkg/domain/model"
)

// Notifier delivers a notification to an external endpoint
type Notifier interface {
	Notify(ctx context.Context, n *model.Notification) error
}
