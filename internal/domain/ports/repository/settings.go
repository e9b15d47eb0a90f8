package repository

import "context"

// UserSettings holds the per-user knobs owned by user settings, currently
// just the expiry-notification threshold in days.
type UserSettings struct {
	ExpiryThresholdDays int `json:"expiry_threshold_days"`
}

// SettingsRepository is the port for per-user settings.
type SettingsRepository interface {
	// Get returns the user's settings, or the supplied defaults when the
	// user never changed anything.
	Get(ctx context.Context, userID string, defaults UserSettings) (UserSettings, error)
	Set(ctx context.Context, userID string, s UserSettings) error
}

// DismissStore remembers which recommendation a user dismissed today so the
// banner is not re-shown within its display cadence. Dismissals expire on
// their own; they never affect what the engine computes.
type DismissStore interface {
	Dismiss(ctx context.Context, userID, recommendationID string) error
	IsDismissed(ctx context.Context, userID, recommendationID string) (bool, error)
}
