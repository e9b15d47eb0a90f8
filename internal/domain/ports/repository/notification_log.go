package repository

import "context"

// NotificationLogRepository records which expiry alerts have already been
// sent so a gifticon is alerted at most once per threshold window.
type NotificationLogRepository interface {
	Exists(ctx context.Context, gifticonID string, kind string, thresholdDays int) (bool, error)
	Record(ctx context.Context, gifticonID string, kind string, thresholdDays int) error
}
