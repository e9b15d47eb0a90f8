package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"gifticon-keeper/internal/infra/metrics"
	"gifticon-keeper/internal/usecase"
)

// runEvery executes fn once right away, then on every tick until ctx ends.
// Each worker in this package is such a loop around one use case call.
func runEvery(ctx context.Context, interval time.Duration, log *zerolog.Logger, fn func(context.Context)) error {
	log.Info().Dur("interval", interval).Msg("worker started")
	fn(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("worker stopped")
			return ctx.Err()
		case <-ticker.C:
			fn(ctx)
		}
	}
}

// NotificationWorker periodically pushes expiry alerts for vouchers that
// entered the warning window since the last pass.
type NotificationWorker struct {
	interval time.Duration
	notifUC  usecase.NotificationUseCase
	log      *zerolog.Logger
}

func NewNotificationWorker(interval time.Duration, notifUC usecase.NotificationUseCase, logger *zerolog.Logger) *NotificationWorker {
	compLog := logger.With().Str("component", "NotificationWorker").Logger()
	return &NotificationWorker{interval: interval, notifUC: notifUC, log: &compLog}
}

func (w *NotificationWorker) Run(ctx context.Context) error {
	return runEvery(ctx, w.interval, w.log, w.check)
}

func (w *NotificationWorker) check(ctx context.Context) {
	sent, err := w.notifUC.CheckAndSendExpiryAlerts(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("expiry alert check failed")
		return
	}
	if sent > 0 {
		metrics.IncExpiryAlertsSent(sent)
		w.log.Info().Int("count", sent).Msg("expiry alerts sent")
	}
}
