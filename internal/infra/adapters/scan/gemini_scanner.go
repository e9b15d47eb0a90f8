package scan

import (
	"context"
	"encoding/base64"
	"errors"

	"google.golang.org/genai"

	"gifticon-keeper/internal/domain/ports/adapter"
)

var _ adapter.GifticonScanner = (*GeminiScanner)(nil)

type GeminiScanner struct {
	client *genai.Client
	model  string
}

// NewGeminiScanner creates a Gemini-backed scanner using the official SDK.
func NewGeminiScanner(ctx context.Context, apiKey, baseURL, model string) (*GeminiScanner, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: empty api key")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return nil, err
	}
	return &GeminiScanner{client: c, model: model}, nil
}

func (s *GeminiScanner) Provider() string { return "gemini" }

func (s *GeminiScanner) Extract(ctx context.Context, imageBase64 string) (adapter.ScanResult, error) {
	data, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return adapter.ScanResult{}, errors.New("gemini: image is not valid base64")
	}

	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{Text: extractionPrompt},
			{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: data}},
		},
	}}
	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return adapter.ScanResult{}, err
	}

	text := ""
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil && len(resp.Candidates[0].Content.Parts) > 0 {
		text = resp.Candidates[0].Content.Parts[0].Text
	}
	if text == "" {
		return adapter.ScanResult{}, errors.New("gemini: empty answer")
	}
	return parseScanJSON(text)
}
