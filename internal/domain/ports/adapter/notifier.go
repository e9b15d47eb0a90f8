package adapter

import (
	"context"

	"gifticon-keeper/internal/domain/model"
)

// Notifier delivers expiry alerts to the user's configured channel.
type Notifier interface {
	NotifyExpiring(ctx context.Context, g *model.Gifticon, daysLeft int) error
}
