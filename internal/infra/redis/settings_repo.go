package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"gifticon-keeper/internal/domain/ports/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo keeps per-user settings as small JSON blobs. Settings are
// tiny and rewritten whole, so redis beats a dedicated table here.
type SettingsRepo struct {
	client RedisClient
}

func NewSettingsRepo(client RedisClient) repository.SettingsRepository {
	return &SettingsRepo{client: client}
}

func settingsKey(userID string) string {
	return fmt.Sprintf("settings:%s", userID)
}

func (s *SettingsRepo) Get(ctx context.Context, userID string, defaults repository.UserSettings) (repository.UserSettings, error) {
	data, err := s.client.Get(ctx, settingsKey(userID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return defaults, nil
		}
		return defaults, err
	}
	var out repository.UserSettings
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		return defaults, err
	}
	return out, nil
}

func (s *SettingsRepo) Set(ctx context.Context, userID string, settings repository.UserSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	// Settings have no TTL; they last until changed.
	return s.client.Set(ctx, settingsKey(userID), data, 0)
}
