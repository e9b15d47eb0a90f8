package scan_test

import (
	"context"
	"errors"
	"testing"

	"gifticon-keeper/internal/domain/ports/adapter"
	scan "gifticon-keeper/internal/infra/adapters/scan"
)

type stubScanner struct {
	name  string
	calls int
	res   adapter.ScanResult
	err   error
}

func (s *stubScanner) Provider() string { return s.name }

func (s *stubScanner) Extract(ctx context.Context, imageBase64 string) (adapter.ScanResult, error) {
	s.calls++
	return s.res, s.err
}

func TestFallbackChain(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("first success wins and stops the chain", func(t *testing.T) {
		first := &stubScanner{name: "openai", res: adapter.ScanResult{Brand: "A"}}
		second := &stubScanner{name: "gemini", res: adapter.ScanResult{Brand: "B"}}
		m := scan.NewMultiScanner(first, second)

		res, err := m.Extract(ctx, "img")
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if res.Brand != "A" {
			t.Errorf("expected first provider's result, got %q", res.Brand)
		}
		if second.calls != 0 {
			t.Errorf("second provider should not run, got %d calls", second.calls)
		}
	})

	t.Run("falls through on failure", func(t *testing.T) {
		first := &stubScanner{name: "openai", err: errors.New("quota")}
		second := &stubScanner{name: "gemini", res: adapter.ScanResult{Brand: "B"}}
		m := scan.NewMultiScanner(first, second)

		res, err := m.Extract(ctx, "img")
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if res.Brand != "B" || first.calls != 1 {
			t.Errorf("expected fallback to second provider, got %q", res.Brand)
		}
	})

	t.Run("all failing returns the last error", func(t *testing.T) {
		wantErr := errors.New("also down")
		m := scan.NewMultiScanner(
			&stubScanner{name: "openai", err: errors.New("down")},
			&stubScanner{name: "gemini", err: wantErr},
		)
		if _, err := m.Extract(ctx, "img"); !errors.Is(err, wantErr) {
			t.Errorf("expected last provider's error, got %v", err)
		}
	})

	t.Run("no providers is an error", func(t *testing.T) {
		if _, err := scan.NewMultiScanner().Extract(ctx, "img"); err == nil {
			t.Error("expected an error with an empty chain")
		}
	})
}
