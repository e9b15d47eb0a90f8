package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"gifticon-keeper/internal/domain/model"
	"gifticon-keeper/internal/domain/ports/adapter"
	"gifticon-keeper/internal/domain/ports/repository"
	"gifticon-keeper/internal/domain/recommend"
	"gifticon-keeper/internal/infra/logging"
)

const expiryAlertKind = "expiry"

// Compile-time check
var _ NotificationUseCase = (*notificationUC)(nil)

type NotificationUseCase interface {
	// CheckAndSendExpiryAlerts alerts owners of gifticons expiring within
	// the threshold, at most once per gifticon and threshold. Returns how
	// many alerts were sent.
	CheckAndSendExpiryAlerts(ctx context.Context) (int, error)
}

type notificationUC struct {
	repo      repository.GifticonRepository
	sentLog   repository.NotificationLogRepository
	notifier  adapter.Notifier
	threshold int
	now       func() time.Time
	log       *zerolog.Logger
}

func NewNotificationUseCase(repo repository.GifticonRepository, sentLog repository.NotificationLogRepository, notifier adapter.Notifier, thresholdDays int, now func() time.Time, logger *zerolog.Logger) *notificationUC {
	if thresholdDays <= 0 {
		thresholdDays = 7
	}
	if now == nil {
		now = time.Now
	}
	return &notificationUC{
		repo:      repo,
		sentLog:   sentLog,
		notifier:  notifier,
		threshold: thresholdDays,
		now:       now,
		log:       logger,
	}
}

func (n *notificationUC) CheckAndSendExpiryAlerts(ctx context.Context) (int, error) {
	now := n.now()
	items, err := n.repo.FindExpiring(ctx, now, n.threshold)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, g := range items {
		if g.Used {
			// Used vouchers never warrant an alert, whatever their expiry.
			continue
		}
		already, err := n.sentLog.Exists(ctx, g.ID, expiryAlertKind, n.threshold)
		if err != nil {
			n.log.Error().Err(err).Str("gifticon_id", g.ID).Msg("notification log lookup failed")
			continue
		}
		if already {
			continue
		}
		if err := n.sendOne(ctx, g, now); err != nil {
			n.log.Error().Err(err).Str("gifticon_id", g.ID).Msg("expiry alert failed")
			continue
		}
		sent++
	}
	return sent, nil
}

func (n *notificationUC) sendOne(ctx context.Context, g *model.Gifticon, now time.Time) error {
	ctx = logging.WithGifticonID(ctx, g.ID)
	days, _ := recommend.DaysUntilExpiry(g, now)
	if err := n.notifier.NotifyExpiring(ctx, g, days); err != nil {
		return err
	}
	logging.With(ctx, n.log).Debug().Int("days_left", days).Msg("expiry alert sent")
	return n.sentLog.Record(ctx, g.ID, expiryAlertKind, n.threshold)
}
