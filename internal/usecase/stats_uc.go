package usecase

import (
	"context"

	"gifticon-keeper/internal/domain/ports/repository"
)

// StatsUseCase serves the counters the admin surface and the gauge worker
// read.
type StatsUseCase struct {
	repo repository.GifticonRepository
}

func NewStatsUseCase(repo repository.GifticonRepository) *StatsUseCase {
	return &StatsUseCase{repo: repo}
}

// CountsByStatus returns how many gifticons are used vs unused.
func (uc *StatsUseCase) CountsByStatus(ctx context.Context) (used int, unused int, err error) {
	return uc.repo.CountByStatus(ctx)
}
