package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"gifticon-keeper/internal/infra/metrics"
	"gifticon-keeper/internal/usecase"
)

// StatsWorker refreshes the gifticon count gauges so the dashboard stays
// close to the stored state without a metric write on every mutation.
type StatsWorker struct {
	interval time.Duration
	statsUC  *usecase.StatsUseCase
	log      *zerolog.Logger
}

func NewStatsWorker(interval time.Duration, statsUC *usecase.StatsUseCase, logger *zerolog.Logger) *StatsWorker {
	compLog := logger.With().Str("component", "StatsWorker").Logger()
	return &StatsWorker{interval: interval, statsUC: statsUC, log: &compLog}
}

func (w *StatsWorker) Run(ctx context.Context) error {
	return runEvery(ctx, w.interval, w.log, w.refresh)
}

func (w *StatsWorker) refresh(ctx context.Context) {
	used, unused, err := w.statsUC.CountsByStatus(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("stats refresh failed")
		return
	}
	metrics.SetGifticonsTotal(used, unused)
}
