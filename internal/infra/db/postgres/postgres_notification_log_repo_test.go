//go:build integration

package postgres

import (
	"context"
	"testing"
)

func TestNotificationLogRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	ctx := context.Background()
	repo := NewNotificationLogRepo(testPool)

	t.Run("should record and check alert existence", func(t *testing.T) {
		cleanup(t)

		exists, err := repo.Exists(ctx, "g-1", "expiry", 3)
		if err != nil {
			t.Fatalf("Exists check failed unexpectedly: %v", err)
		}
		if exists {
			t.Fatal("expected alert to not exist, but it was found")
		}

		if err := repo.Record(ctx, "g-1", "expiry", 3); err != nil {
			t.Fatalf("Record failed: %v", err)
		}

		exists, err = repo.Exists(ctx, "g-1", "expiry", 3)
		if err != nil {
			t.Fatalf("Second Exists check failed unexpectedly: %v", err)
		}
		if !exists {
			t.Fatal("expected alert to exist after recording, but it was not found")
		}

		exists, err = repo.Exists(ctx, "g-1", "expiry", 7)
		if err != nil {
			t.Fatalf("Third Exists check failed unexpectedly: %v", err)
		}
		if exists {
			t.Fatal("found alert for wrong threshold")
		}
	})

	t.Run("recording twice is not an error", func(t *testing.T) {
		cleanup(t)
		if err := repo.Record(ctx, "g-1", "expiry", 1); err != nil {
			t.Fatalf("First Record failed unexpectedly: %v", err)
		}
		// The unique constraint absorbs the duplicate.
		if err := repo.Record(ctx, "g-1", "expiry", 1); err != nil {
			t.Fatalf("Second Record should be a no-op, got: %v", err)
		}
	})
}
