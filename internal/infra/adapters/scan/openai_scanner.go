package scan

import (
	"context"
	"errors"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"gifticon-keeper/internal/domain/ports/adapter"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.GifticonScanner = (*OpenAIScanner)(nil)

// OpenAIScanner extracts gifticon fields through the Chat Completions API
// with an image content part.
type OpenAIScanner struct {
	client openai.Client
	model  string
}

func NewOpenAIScanner(apiKey, model string) (*OpenAIScanner, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key empty")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIScanner{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

func (s *OpenAIScanner) Provider() string { return "openai" }

func (s *OpenAIScanner) Extract(ctx context.Context, imageBase64 string) (adapter.ScanResult, error) {
	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(extractionPrompt),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: "data:image/jpeg;base64," + imageBase64,
		}),
	}
	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(parts)},
	})
	if err != nil {
		return adapter.ScanResult{}, err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return adapter.ScanResult{}, errors.New("openai: empty answer")
	}
	return parseScanJSON(resp.Choices[0].Message.Content)
}
