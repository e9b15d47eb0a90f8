//go:build !integration

package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gifticon-keeper/internal/domain/model"
	"gifticon-keeper/internal/domain/recommend"
)

func seedVoucher(t *testing.T, repo *memGifticonRepo, id, brand string, cat model.Category, days int) {
	t.Helper()
	exp := ucNow.AddDate(0, 0, days)
	g := &model.Gifticon{
		ID: id, UserID: "user-1", Brand: brand, Name: brand + " voucher",
		Category: cat, ExpiresAt: &exp, RegisteredAt: ucNow.AddDate(0, 0, -10),
	}
	if err := repo.Save(context.Background(), g); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func newTestRecommendationUC(repo *memGifticonRepo, dismiss *memDismissStore) *RecommendationUseCase {
	n := 0
	engine := recommend.NewEngine(
		func() time.Time { return ucNow }, // 09:00, morning bucket
		func() string { n++; return fmt.Sprintf("rec-%d", n) },
	)
	return NewRecommendationUseCase(repo, dismiss, engine, newTestLogger())
}

func TestRecommendationGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the engine's recommendation", func(t *testing.T) {
		repo := newMemGifticonRepo()
		seedVoucher(t, repo, "cafe", "Mega Coffee", model.CategoryCafe, 2)
		seedVoucher(t, repo, "food", "Burger Hub", model.CategoryFood, 10)

		uc := newTestRecommendationUC(repo, newMemDismissStore())
		rec, err := uc.Generate(ctx, "user-1", recommend.Signals{})
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if rec == nil {
			t.Fatal("expected a recommendation")
		}
		if rec.Family != model.FamilyTimeOfDay {
			t.Errorf("expected time_of_day family, got %s", rec.Family)
		}
	})

	t.Run("nil when the user has no usable vouchers", func(t *testing.T) {
		repo := newMemGifticonRepo()
		uc := newTestRecommendationUC(repo, newMemDismissStore())
		rec, err := uc.Generate(ctx, "user-1", recommend.Signals{})
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if rec != nil {
			t.Error("expected nil recommendation for an empty wallet")
		}
	})

	t.Run("dismissal suppresses the same suggestion on the next request", func(t *testing.T) {
		repo := newMemGifticonRepo()
		seedVoucher(t, repo, "cafe", "Mega Coffee", model.CategoryCafe, 2)
		seedVoucher(t, repo, "food", "Burger Hub", model.CategoryFood, 10)
		dismiss := newMemDismissStore()
		uc := newTestRecommendationUC(repo, dismiss)

		first, err := uc.Generate(ctx, "user-1", recommend.Signals{})
		if err != nil || first == nil {
			t.Fatalf("first generate: rec=%v err=%v", first, err)
		}
		if err := uc.Dismiss(ctx, "user-1", Fingerprint(first)); err != nil {
			t.Fatalf("dismiss: %v", err)
		}
		second, err := uc.Generate(ctx, "user-1", recommend.Signals{})
		if err != nil {
			t.Fatalf("second generate: %v", err)
		}
		if second != nil {
			t.Error("dismissed recommendation should be suppressed")
		}
	})

	t.Run("dismiss store failure degrades to showing the banner", func(t *testing.T) {
		repo := newMemGifticonRepo()
		seedVoucher(t, repo, "cafe", "Mega Coffee", model.CategoryCafe, 2)
		seedVoucher(t, repo, "food", "Burger Hub", model.CategoryFood, 10)
		dismiss := newMemDismissStore()
		dismiss.isErr = errors.New("redis down")
		uc := newTestRecommendationUC(repo, dismiss)

		rec, err := uc.Generate(ctx, "user-1", recommend.Signals{})
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if rec == nil {
			t.Error("lookup failure must not hide the recommendation")
		}
	})

	t.Run("repository errors propagate", func(t *testing.T) {
		repo := newMemGifticonRepo()
		repo.findErr = errors.New("db down")
		uc := newTestRecommendationUC(repo, newMemDismissStore())
		if _, err := uc.Generate(ctx, "user-1", recommend.Signals{}); err == nil {
			t.Error("expected the repository error to propagate")
		}
	})
}

func TestFingerprint(t *testing.T) {
	g := &model.Gifticon{ID: "g-1"}
	a := &model.Recommendation{Family: model.FamilyTimeOfDay, Gifticons: []*model.Gifticon{g}}
	b := &model.Recommendation{Family: model.FamilyTimeOfDay, Gifticons: []*model.Gifticon{g}}
	if Fingerprint(a) != Fingerprint(b) {
		t.Error("same content should produce the same fingerprint")
	}
	c := &model.Recommendation{Family: model.FamilyFallback, Gifticons: []*model.Gifticon{g}}
	if Fingerprint(a) == Fingerprint(c) {
		t.Error("different families should produce different fingerprints")
	}
}
