package adapter

import (
	"context"
	"time"
)

// ScanResult is the best-effort field extraction from a gifticon image.
// Any field may be empty; ExpiresAt is nil when no date could be read.
type ScanResult struct {
	Brand     string
	Name      string
	Category  string
	ExpiresAt *time.Time
	Raw       string // provider's raw answer, kept for debugging
}

// GifticonScanner is the external image-extraction collaborator. It either
// returns a best-effort ScanResult or fails; callers must treat failure as
// "register manually", never as a crash.
type GifticonScanner interface {
	Extract(ctx context.Context, imageBase64 string) (ScanResult, error)
	Provider() string
}
