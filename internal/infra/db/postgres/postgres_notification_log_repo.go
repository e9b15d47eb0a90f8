package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"

	"gifticon-keeper/internal/domain/ports/repository"
)

var _ repository.NotificationLogRepository = (*notificationLogRepo)(nil)

type notificationLogRepo struct {
	pool *pgxpool.Pool
}

func NewNotificationLogRepo(pool *pgxpool.Pool) repository.NotificationLogRepository {
	return &notificationLogRepo{pool: pool}
}

func (r *notificationLogRepo) Record(ctx context.Context, gifticonID, kind string, thresholdDays int) error {
	const q = `
INSERT INTO gifticon_notifications (id, gifticon_id, kind, threshold_days)
VALUES ($1, $2, $3, $4)`

	// The UNIQUE constraint on (gifticon_id, kind, threshold_days) is the
	// real duplicate guard; a concurrent double-send collapses to one row.
	_, err := r.pool.Exec(ctx, q, uuid.NewString(), gifticonID, kind, thresholdDays)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil
		}
		return err
	}
	return nil
}

func (r *notificationLogRepo) Exists(ctx context.Context, gifticonID, kind string, thresholdDays int) (bool, error) {
	const q = `
SELECT EXISTS(
    SELECT 1 FROM gifticon_notifications
    WHERE gifticon_id = $1 AND kind = $2 AND threshold_days = $3
)`
	var exists bool
	if err := r.pool.QueryRow(ctx, q, gifticonID, kind, thresholdDays).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
