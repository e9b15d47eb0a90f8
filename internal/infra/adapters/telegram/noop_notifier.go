package telegram

import (
	"context"
	"log"

	"gifticon-keeper/internal/domain/model"
	"gifticon-keeper/internal/domain/ports/adapter"
)

var _ adapter.Notifier = (*NoopNotifier)(nil)

// NoopNotifier logs alerts instead of sending them, for local/dev runs
// without a bot token.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier { return &NoopNotifier{} }

func (n *NoopNotifier) NotifyExpiring(ctx context.Context, g *model.Gifticon, daysLeft int) error {
	log.Printf("[noop-notifier] %s (%s) expires in %d days\n", g.Name, g.Brand, daysLeft)
	return nil
}
