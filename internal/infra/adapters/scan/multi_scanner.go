package scan

import (
	"context"
	"errors"

	"gifticon-keeper/internal/domain/ports/adapter"
)

var _ adapter.GifticonScanner = (*MultiScanner)(nil)

// MultiScanner tries providers in order and returns the first extraction
// that succeeds. Provider order is the preference order.
type MultiScanner struct {
	scanners []adapter.GifticonScanner
}

func NewMultiScanner(scanners ...adapter.GifticonScanner) *MultiScanner {
	return &MultiScanner{scanners: scanners}
}

func (m *MultiScanner) Provider() string { return "multi" }

func (m *MultiScanner) Extract(ctx context.Context, imageBase64 string) (adapter.ScanResult, error) {
	if len(m.scanners) == 0 {
		return adapter.ScanResult{}, errors.New("no scan providers configured")
	}
	var lastErr error
	for _, s := range m.scanners {
		res, err := s.Extract(ctx, imageBase64)
		if err == nil {
			return res, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return adapter.ScanResult{}, ctx.Err()
		}
	}
	return adapter.ScanResult{}, lastErr
}
