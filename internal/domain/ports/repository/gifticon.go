package repository

import (
	"context"
	"time"

	"gifticon-keeper/internal/domain/model"
)

// GifticonRepository is the port for stored gifticons.
type GifticonRepository interface {
	Save(ctx context.Context, g *model.Gifticon) error
	FindByID(ctx context.Context, id string) (*model.Gifticon, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Gifticon, error)
	Delete(ctx context.Context, id string) error

	// FindExpiring returns unused gifticons across all users whose expiry
	// falls inside [now, now+withinDays]; the notification worker feeds on it.
	FindExpiring(ctx context.Context, now time.Time, withinDays int) ([]*model.Gifticon, error)

	// CountByStatus returns used/unused counts for the status gauges.
	CountByStatus(ctx context.Context) (used int, unused int, err error)
}
