//go:build !integration

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"gifticon-keeper/internal/domain"
	"gifticon-keeper/internal/domain/ports/adapter"
	"gifticon-keeper/internal/infra/worker"
)

func newRunningPool(t *testing.T) *worker.Pool {
	t.Helper()
	pool := worker.NewPool(1)
	ctx, cancel := context.WithCancel(context.Background())
	pool.Start(ctx)
	t.Cleanup(func() {
		cancel()
		pool.Stop()
	})
	return pool
}

func TestScanUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the scanner's extraction", func(t *testing.T) {
		exp := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
		scanner := &mockScanner{result: adapter.ScanResult{
			Brand: "Mega Coffee", Name: "Iced Americano", Category: "cafe", ExpiresAt: &exp,
		}}
		uc := NewScanUseCase(scanner, newRunningPool(t), allowAllLimiter{}, newTestLogger())

		res, err := uc.Scan(ctx, "user-1", "aW1hZ2U=")
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if res.Brand != "Mega Coffee" || res.Category != "cafe" {
			t.Errorf("unexpected extraction: %+v", res)
		}
	})

	t.Run("provider failure maps to ErrScanUnavailable", func(t *testing.T) {
		scanner := &mockScanner{err: errors.New("provider 500")}
		uc := NewScanUseCase(scanner, newRunningPool(t), allowAllLimiter{}, newTestLogger())

		_, err := uc.Scan(ctx, "user-1", "aW1hZ2U=")
		if !errors.Is(err, domain.ErrScanUnavailable) {
			t.Errorf("expected ErrScanUnavailable, got %v", err)
		}
	})

	t.Run("rate limit rejects with ErrRateLimited", func(t *testing.T) {
		uc := NewScanUseCase(&mockScanner{}, newRunningPool(t), denyLimiter{}, newTestLogger())
		_, err := uc.Scan(ctx, "user-1", "aW1hZ2U=")
		if !errors.Is(err, domain.ErrRateLimited) {
			t.Errorf("expected ErrRateLimited, got %v", err)
		}
	})

	t.Run("empty image is invalid input", func(t *testing.T) {
		uc := NewScanUseCase(&mockScanner{}, newRunningPool(t), allowAllLimiter{}, newTestLogger())
		_, err := uc.Scan(ctx, "user-1", "")
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}
