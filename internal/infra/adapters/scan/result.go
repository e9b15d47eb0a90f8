package scan

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gifticon-keeper/internal/domain/ports/adapter"
)

// extractionPrompt asks the model for strict JSON so parsing stays dumb.
// expires_at is null for vouchers without a printed expiry date.
const extractionPrompt = `You are reading a photo of a Korean gifticon (gift voucher barcode image).
Extract the fields and answer with ONLY a JSON object, no prose, no markdown:
{"brand": "...", "name": "...", "category": "cafe|food|convenience|shopping|other", "expires_at": "YYYY-MM-DD" or null}`

// parseScanJSON turns a model answer into a ScanResult. Models sometimes
// wrap JSON in code fences despite instructions, so fences are stripped.
func parseScanJSON(raw string) (adapter.ScanResult, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var payload struct {
		Brand     string  `json:"brand"`
		Name      string  `json:"name"`
		Category  string  `json:"category"`
		ExpiresAt *string `json:"expires_at"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return adapter.ScanResult{}, fmt.Errorf("unparseable extraction answer: %w", err)
	}

	res := adapter.ScanResult{
		Brand:    strings.TrimSpace(payload.Brand),
		Name:     strings.TrimSpace(payload.Name),
		Category: strings.TrimSpace(payload.Category),
		Raw:      raw,
	}
	if payload.ExpiresAt != nil && *payload.ExpiresAt != "" {
		if t, err := time.Parse("2006-01-02", *payload.ExpiresAt); err == nil {
			t = t.UTC()
			res.ExpiresAt = &t
		}
		// A malformed date is dropped, not fatal; the user fixes it by hand.
	}
	return res, nil
}
