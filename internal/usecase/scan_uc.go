package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"gifticon-keeper/internal/domain"
	"gifticon-keeper/internal/domain/ports/adapter"
	"gifticon-keeper/internal/infra/metrics"
	"gifticon-keeper/internal/infra/worker"
)

// ScanRateLimiter bounds how often one user may run image extraction.
type ScanRateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// ScanUseCase runs gifticon image extraction through the worker pool so slow
// provider calls cannot pile up in HTTP handlers.
type ScanUseCase struct {
	scanner adapter.GifticonScanner
	pool    *worker.Pool
	limiter ScanRateLimiter
	log     *zerolog.Logger
}

func NewScanUseCase(scanner adapter.GifticonScanner, pool *worker.Pool, limiter ScanRateLimiter, logger *zerolog.Logger) *ScanUseCase {
	return &ScanUseCase{scanner: scanner, pool: pool, limiter: limiter, log: logger}
}

type scanOutcome struct {
	result adapter.ScanResult
	err    error
}

// Scan extracts gifticon fields from a base64 image. Extraction is
// best-effort: provider failures surface as ErrScanUnavailable and the
// caller falls back to manual entry.
func (uc *ScanUseCase) Scan(ctx context.Context, userID, imageBase64 string) (adapter.ScanResult, error) {
	if imageBase64 == "" {
		return adapter.ScanResult{}, domain.ErrInvalidArgument
	}
	if uc.limiter != nil {
		ok, err := uc.limiter.Allow(ctx, "scan:"+userID)
		if err != nil {
			uc.log.Warn().Err(err).Msg("rate limiter unavailable, allowing scan")
		} else if !ok {
			metrics.IncScanRateLimited()
			return adapter.ScanResult{}, domain.ErrRateLimited
		}
	}

	outCh := make(chan scanOutcome, 1)
	start := time.Now()
	submitErr := uc.pool.Submit(func(context.Context) error {
		res, err := uc.scanner.Extract(ctx, imageBase64)
		outCh <- scanOutcome{result: res, err: err}
		return err
	})
	if submitErr != nil {
		return adapter.ScanResult{}, fmt.Errorf("%w: %v", domain.ErrScanUnavailable, submitErr)
	}

	select {
	case <-ctx.Done():
		return adapter.ScanResult{}, ctx.Err()
	case out := <-outCh:
		latency := int(time.Since(start).Milliseconds())
		metrics.ObserveScan(uc.scanner.Provider(), latency, out.err == nil)
		if out.err != nil {
			return adapter.ScanResult{}, fmt.Errorf("%w: %v", domain.ErrScanUnavailable, out.err)
		}
		return out.result, nil
	}
}
