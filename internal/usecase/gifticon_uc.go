package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"gifticon-keeper/internal/domain"
	"gifticon-keeper/internal/domain/model"
	"gifticon-keeper/internal/domain/ports/repository"
	"gifticon-keeper/internal/domain/recommend"
)

// expiryDateLayout is the wire format for expiry dates.
const expiryDateLayout = "2006-01-02"

// GifticonUseCase implements gifticon CRUD and the expiry-derived reads.
type GifticonUseCase struct {
	repo             repository.GifticonRepository
	settings         repository.SettingsRepository
	defaultThreshold int
	newID            func() string
	now              func() time.Time
	log              *zerolog.Logger
}

// NewGifticonUseCase constructs the use case. The id generator and clock are
// injectable for tests; nil picks the production defaults.
func NewGifticonUseCase(repo repository.GifticonRepository, settings repository.SettingsRepository, defaultThreshold int, newID func() string, now func() time.Time, logger *zerolog.Logger) *GifticonUseCase {
	if newID == nil {
		newID = uuid.NewString
	}
	if now == nil {
		now = time.Now
	}
	if defaultThreshold <= 0 {
		defaultThreshold = 7
	}
	return &GifticonUseCase{
		repo:             repo,
		settings:         settings,
		defaultThreshold: defaultThreshold,
		newID:            newID,
		now:              now,
		log:              logger,
	}
}

// Register creates a gifticon. A malformed expiry date is a data-quality
// problem, not a failure: the voucher is stored as never-expiring and the
// issue is logged for the caller to surface.
func (uc *GifticonUseCase) Register(ctx context.Context, userID, brand, name, category, expiryDate string) (*model.Gifticon, error) {
	expiresAt, parseOK := parseExpiry(expiryDate)
	g, err := model.NewGifticon(uc.newID(), userID, brand, name, model.ParseCategory(category), expiresAt, uc.now())
	if err != nil {
		return nil, err
	}
	if !parseOK {
		uc.log.Warn().Str("gifticon_id", g.ID).Str("raw_expiry", expiryDate).
			Msg("unparseable expiry date, stored as never-expiring")
	}
	if err := uc.repo.Save(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// parseExpiry returns (nil, true) for an intentionally empty date and
// (nil, false) for a malformed one; both mean "never expires" downstream.
func parseExpiry(raw string) (*time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(expiryDateLayout, raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}

func (uc *GifticonUseCase) Get(ctx context.Context, userID, id string) (*model.Gifticon, error) {
	g, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.UserID != userID {
		return nil, domain.ErrNotOwner
	}
	return g, nil
}

func (uc *GifticonUseCase) List(ctx context.Context, userID string) ([]*model.Gifticon, error) {
	return uc.repo.ListByUser(ctx, userID)
}

// Update rewrites the mutable fields. RegisteredAt and the used flag are not
// touched here; the used flag belongs to ToggleUsed.
func (uc *GifticonUseCase) Update(ctx context.Context, userID, id, brand, name, category, expiryDate string) (*model.Gifticon, error) {
	g, err := uc.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if brand == "" || name == "" {
		return nil, domain.ErrInvalidArgument
	}
	expiresAt, parseOK := parseExpiry(expiryDate)
	if !parseOK {
		uc.log.Warn().Str("gifticon_id", g.ID).Str("raw_expiry", expiryDate).
			Msg("unparseable expiry date on update, stored as never-expiring")
	}
	g.Brand = brand
	g.Name = name
	g.Category = model.ParseCategory(category)
	g.ExpiresAt = expiresAt
	if err := uc.repo.Save(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// ToggleUsed flips the usage state. This is the only writer of the used
// flag; recommendation eligibility re-derives from it on every call.
func (uc *GifticonUseCase) ToggleUsed(ctx context.Context, userID, id string) (*model.Gifticon, error) {
	g, err := uc.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	g.Used = !g.Used
	if err := uc.repo.Save(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (uc *GifticonUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.Get(ctx, userID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// ListExpiring returns the user's vouchers expiring within thresholdDays.
// A non-positive threshold falls back to the user's saved setting, then to
// the service default.
func (uc *GifticonUseCase) ListExpiring(ctx context.Context, userID string, thresholdDays int) ([]*model.Gifticon, error) {
	if thresholdDays <= 0 {
		s, err := uc.settings.Get(ctx, userID, repository.UserSettings{ExpiryThresholdDays: uc.defaultThreshold})
		if err != nil {
			uc.log.Warn().Err(err).Msg("settings lookup failed, using default threshold")
			s.ExpiryThresholdDays = uc.defaultThreshold
		}
		thresholdDays = s.ExpiryThresholdDays
	}
	gs, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return recommend.ExpiringSoon(gs, uc.now(), thresholdDays), nil
}

// Settings returns the user's saved settings with service defaults filled
// in for anything never changed.
func (uc *GifticonUseCase) Settings(ctx context.Context, userID string) (repository.UserSettings, error) {
	return uc.settings.Get(ctx, userID, repository.UserSettings{ExpiryThresholdDays: uc.defaultThreshold})
}

// UpdateSettings rewrites the user's settings. The threshold must stay in a
// range where expiry alerts remain meaningful.
func (uc *GifticonUseCase) UpdateSettings(ctx context.Context, userID string, thresholdDays int) (repository.UserSettings, error) {
	if thresholdDays < 1 || thresholdDays > 365 {
		return repository.UserSettings{}, domain.ErrInvalidArgument
	}
	s := repository.UserSettings{ExpiryThresholdDays: thresholdDays}
	if err := uc.settings.Set(ctx, userID, s); err != nil {
		return repository.UserSettings{}, err
	}
	return s, nil
}

// BrandStats aggregates the user's vouchers per brand.
func (uc *GifticonUseCase) BrandStats(ctx context.Context, userID string) (map[string]recommend.BrandStat, error) {
	gs, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return recommend.BrandStats(gs, uc.now()), nil
}

// Status derives the expiry status of one voucher at the current instant.
func (uc *GifticonUseCase) Status(g *model.Gifticon) model.ExpiryStatus {
	return recommend.StatusOf(g, uc.now())
}
