//go:build !integration

package web_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"gifticon-keeper/internal/domain"
	"gifticon-keeper/internal/domain/model"
	"gifticon-keeper/internal/domain/ports/adapter"
	"gifticon-keeper/internal/domain/ports/repository"
	"gifticon-keeper/internal/domain/recommend"
)

func newLogger() *zerolog.Logger { l := zerolog.Nop(); return &l }

//
// ---------------- in-memory infra mocks ----------------
//

type memGifticonRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Gifticon

	listErr error
}

func newMemGifticonRepo() *memGifticonRepo {
	return &memGifticonRepo{store: map[string]*model.Gifticon{}}
}

func (m *memGifticonRepo) Save(ctx context.Context, g *model.Gifticon) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *g
	m.store[g.ID] = &cp
	return nil
}

func (m *memGifticonRepo) FindByID(ctx context.Context, id string) (*model.Gifticon, error) {
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
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Gifticon
	for _, g := range m.store {
		if g.UserID == userID {
			cp := *g
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RegisteredAt.Equal(out[j].RegisteredAt) {
			return out[i].RegisteredAt.Before(out[j].RegisteredAt)
		}
		return out[i].ID < out[j].ID
	})
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
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]*model.Gifticon, 0, len(m.store))
	for _, g := range m.store {
		cp := *g
		all = append(all, &cp)
	}
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

type memSettingsRepo struct {
	mu    sync.RWMutex
	store map[string]repository.UserSettings
}

func newMemSettingsRepo() *memSettingsRepo {
	return &memSettingsRepo{store: map[string]repository.UserSettings{}}
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

type memDismissStore struct {
	mu   sync.RWMutex
	seen map[string]bool
}

func newMemDismissStore() *memDismissStore {
	return &memDismissStore{seen: map[string]bool{}}
}

func (m *memDismissStore) Dismiss(ctx context.Context, userID, recommendationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen[userID+"|"+recommendationID] = true
	return nil
}

func (m *memDismissStore) IsDismissed(ctx context.Context, userID, recommendationID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.seen[userID+"|"+recommendationID], nil
}

type stubScanner struct {
	result adapter.ScanResult
	err    error
}

func (s *stubScanner) Extract(ctx context.Context, imageBase64 string) (adapter.ScanResult, error) {
	return s.result, s.err
}

func (s *stubScanner) Provider() string { return "stub" }

type allowAllLimiter struct{}

func (allowAllLimiter) Allow(ctx context.Context, key string) (bool, error) { return true, nil }

type denyLimiter struct{}

func (denyLimiter) Allow(ctx context.Context, key string) (bool, error) { return false, nil }
