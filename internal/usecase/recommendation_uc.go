package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"gifticon-keeper/internal/domain/model"
	"gifticon-keeper/internal/domain/ports/repository"
	"gifticon-keeper/internal/domain/recommend"
	"gifticon-keeper/internal/infra/logging"
	"gifticon-keeper/internal/infra/metrics"
)

// RecommendationUseCase wraps the pure engine with storage, dismissal state
// and metrics. The engine itself stays free of all of that.
type RecommendationUseCase struct {
	repo    repository.GifticonRepository
	dismiss repository.DismissStore
	engine  *recommend.Engine
	log     *zerolog.Logger
}

func NewRecommendationUseCase(repo repository.GifticonRepository, dismiss repository.DismissStore, engine *recommend.Engine, logger *zerolog.Logger) *RecommendationUseCase {
	return &RecommendationUseCase{repo: repo, dismiss: dismiss, engine: engine, log: logger}
}

// Fingerprint identifies a recommendation by content rather than by its
// per-call id, so dismissing one suppresses the same suggestion on the next
// request even though the engine mints a fresh id every time.
func Fingerprint(rec *model.Recommendation) string {
	parts := make([]string, 0, len(rec.Gifticons)+1)
	parts = append(parts, string(rec.Family))
	for _, g := range rec.Gifticons {
		parts = append(parts, g.ID)
	}
	return strings.Join(parts, "/")
}

// Generate evaluates the engine for one user. Returns nil when there is
// nothing to suggest or the suggestion was dismissed within its cadence
// window; the caller renders nothing in that case.
func (uc *RecommendationUseCase) Generate(ctx context.Context, userID string, sig recommend.Signals) (*model.Recommendation, error) {
	defer logging.TraceDuration(uc.log, "RecommendationUC.Generate")()
	gs, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	rec, ok := uc.engine.Generate(gs, sig)
	if !ok {
		metrics.IncRecommendationEmpty()
		return nil, nil
	}

	dismissed, err := uc.dismiss.IsDismissed(ctx, userID, Fingerprint(rec))
	if err != nil {
		// Dismissal state is cosmetic; losing it must not block the banner.
		uc.log.Warn().Err(err).Msg("dismiss lookup failed, showing recommendation")
	} else if dismissed {
		uc.log.Debug().Str("family", string(rec.Family)).Msg("recommendation suppressed by dismissal")
		return nil, nil
	}

	metrics.IncRecommendation(string(rec.Family))
	return rec, nil
}

// Dismiss records that the user waved the suggestion away. The token is the
// recommendation fingerprint handed out alongside the recommendation.
func (uc *RecommendationUseCase) Dismiss(ctx context.Context, userID, token string) error {
	if token == "" {
		return nil
	}
	if err := uc.dismiss.Dismiss(ctx, userID, token); err != nil {
		return err
	}
	metrics.IncRecommendationDismissed()
	return nil
}
