package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gifticon-keeper/internal/domain/ports/repository"
)

var _ repository.DismissStore = (*DismissStore)(nil)

// DismissStore records dismissed recommendation fingerprints with a TTL, so
// a dismissed banner stays hidden for the day and then comes back on its own.
type DismissStore struct {
	client RedisClient
	ttl    time.Duration
}

func NewDismissStore(client RedisClient, ttl time.Duration) repository.DismissStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &DismissStore{client: client, ttl: ttl}
}

func dismissKey(userID, recommendationID string) string {
	return fmt.Sprintf("dismiss:%s:%s", userID, recommendationID)
}

func (s *DismissStore) Dismiss(ctx context.Context, userID, recommendationID string) error {
	return s.client.Set(ctx, dismissKey(userID, recommendationID), "1", s.ttl)
}

func (s *DismissStore) IsDismissed(ctx context.Context, userID, recommendationID string) (bool, error) {
	_, err := s.client.Get(ctx, dismissKey(userID, recommendationID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
