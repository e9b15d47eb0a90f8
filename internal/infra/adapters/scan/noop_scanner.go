package scan

import (
	"context"
	"time"

	"gifticon-keeper/internal/domain/ports/adapter"
)

var _ adapter.GifticonScanner = (*NoopScanner)(nil)

// NoopScanner answers with a canned voucher for local/dev runs without any
// provider key configured.
type NoopScanner struct{}

func NewNoopScanner() *NoopScanner { return &NoopScanner{} }

func (s *NoopScanner) Provider() string { return "noop" }

func (s *NoopScanner) Extract(ctx context.Context, imageBase64 string) (adapter.ScanResult, error) {
	select {
	case <-time.After(100 * time.Millisecond):
	case <-ctx.Done():
		return adapter.ScanResult{}, ctx.Err()
	}
	exp := time.Now().UTC().AddDate(0, 0, 30)
	return adapter.ScanResult{
		Brand:     "Dev Cafe",
		Name:      "Iced Americano",
		Category:  "cafe",
		ExpiresAt: &exp,
		Raw:       `{"brand":"Dev Cafe","name":"Iced Americano","category":"cafe"}`,
	}, nil
}
