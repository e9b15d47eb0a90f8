//go:build !integration

package usecase

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"gifticon-keeper/internal/domain"
	"gifticon-keeper/internal/domain/model"
	"gifticon-keeper/internal/domain/ports/adapter"
	"gifticon-keeper/internal/domain/ports/repository"
	"gifticon-keeper/internal/domain/recommend"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

// memGifticonRepo is a small in-memory implementation used by unit tests.
type memGifticonRepo struct {
	mu      sync.RWMutex
	store   map[string]*model.Gifticon
	saveErr error // used by tests to simulate save failures
	findErr error
}

func newMemGifticonRepo() *memGifticonRepo {
	return &memGifticonRepo{store: make(map[string]*model.Gifticon)}
}

func (m *memGifticonRepo) Save(ctx context.Context, g *model.Gifticon) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *g
	m.store[g.ID] = &cp
	return nil
}

func (m *memGifticonRepo) FindByID(ctx context.Context, id string) (*model.Gifticon, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (m *memGifticonRepo) ListByUser(ctx context.Context, userID string) ([]*model.Gifticon, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.Gifticon, 0)
	for _, g := range m.store {
		if g.UserID == userID {
			cp := *g
			out = append(out, &cp)
		}
	}
	// Stable order: registration time then id, so tests are reproducible.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0; j-- {
			a, b := out[j-1], out[j]
			if a.RegisteredAt.After(b.RegisteredAt) || (a.RegisteredAt.Equal(b.RegisteredAt) && a.ID > b.ID) {
				out[j-1], out[j] = b, a
			} else {
				break
			}
		}
	}
	return out, nil
}

func (m *memGifticonRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *memGifticonRepo) FindExpiring(ctx context.Context, now time.Time, withinDays int) ([]*model.Gifticon, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	m.mu.RLock()
	all := make([]*model.Gifticon, 0, len(m.store))
	for _, g := range m.store {
		cp := *g
		all = append(all, &cp)
	}
	m.mu.RUnlock()
	return recommend.ExpiringSoon(all, now, withinDays), nil
}

func (m *memGifticonRepo) CountByStatus(ctx context.Context) (int, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	used, unused := 0, 0
	for _, g := range m.store {
		if g.Used {
			used++
		} else {
			unused++
		}
	}
	return used, unused, nil
}

// memNotificationLogRepo remembers sent alerts in a set.
type memNotificationLogRepo struct {
	mu        sync.Mutex
	sent      map[string]bool
	existsErr error
}

func newMemNotificationLogRepo() *memNotificationLogRepo {
	return &memNotificationLogRepo{sent: make(map[string]bool)}
}

func logKey(gifticonID, kind string, threshold int) string {
	return fmt.Sprintf("%s|%s|%d", gifticonID, kind, threshold)
}

func (m *memNotificationLogRepo) Exists(ctx context.Context, gifticonID, kind string, thresholdDays int) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[logKey(gifticonID, kind, thresholdDays)], nil
}

func (m *memNotificationLogRepo) Record(ctx context.Context, gifticonID, kind string, thresholdDays int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent[logKey(gifticonID, kind, thresholdDays)] = true
	return nil
}

// memSettingsRepo serves stored settings or the supplied defaults.
type memSettingsRepo struct {
	mu    sync.RWMutex
	store map[string]repository.UserSettings
}

func newMemSettingsRepo() *memSettingsRepo {
	return &memSettingsRepo{store: make(map[string]repository.UserSettings)}
}

func (m *memSettingsRepo) Get(ctx context.Context, userID string, defaults repository.UserSettings) (repository.UserSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.store[userID]; ok {
		return s, nil
	}
	return defaults, nil
}

func (m *memSettingsRepo) Set(ctx context.Context, userID string, s repository.UserSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[userID] = s
	return nil
}

// memDismissStore tracks dismissed fingerprints.
type memDismissStore struct {
	mu        sync.Mutex
	dismissed map[string]bool
	isErr     error
}

func newMemDismissStore() *memDismissStore {
	return &memDismissStore{dismissed: make(map[string]bool)}
}

func (m *memDismissStore) Dismiss(ctx context.Context, userID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dismissed[userID+"|"+token] = true
	return nil
}

func (m *memDismissStore) IsDismissed(ctx context.Context, userID, token string) (bool, error) {
	if m.isErr != nil {
		return false, m.isErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dismissed[userID+"|"+token], nil
}

// mockNotifier records delivered alerts.
type mockNotifier struct {
	mu      sync.Mutex
	sent    []*model.Gifticon
	sendErr error
}

func (m *mockNotifier) NotifyExpiring(ctx context.Context, g *model.Gifticon, daysLeft int) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, g)
	return nil
}

// mockScanner returns a canned extraction or error.
type mockScanner struct {
	result adapter.ScanResult
	err    error
}

func (m *mockScanner) Extract(ctx context.Context, imageBase64 string) (adapter.ScanResult, error) {
	return m.result, m.err
}

func (m *mockScanner) Provider() string { return "mock" }

// allowAllLimiter and denyLimiter exercise the rate-limit branches.
type allowAllLimiter struct{}

func (allowAllLimiter) Allow(ctx context.Context, key string) (bool, error) { return true, nil }

type denyLimiter struct{}

func (denyLimiter) Allow(ctx context.Context, key string) (bool, error) { return false, nil }
