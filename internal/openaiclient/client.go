package openaiclient

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/example/macrocam/internal/logging"
	"github.com/example/macrocam/internal/nutrition"
)

// ErrNoChoices is returned when the API answers without any completion.
var ErrNoChoices = errors.New("openai: response contained no choices")

// Option customises the analyzer.
type Option func(*openai.ClientConfig)

// WithBaseURL points the client at a different API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(cfg *openai.ClientConfig) {
		if baseURL != "" {
			cfg.BaseURL = baseURL
		}
	}
}

// WithHTTPClient replaces the HTTP client used for API calls.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *openai.ClientConfig) {
		if client != nil {
			cfg.HTTPClient = client
		}
	}
}

// NewAnalyzer returns a nutrition.Analyzer backed by the chat completions API.
// An empty apiKey is accepted; calls then fail with the API's auth error.
func NewAnalyzer(apiKey string, logger *zap.Logger, opts ...Option) nutrition.Analyzer {
	cfg := openai.DefaultConfig(apiKey)
	for _, opt := range opts {
		opt(&cfg)
	}
	return &chatAnalyzer{
		client: openai.NewClientWithConfig(cfg),
		model:  nutrition.Model,
		logger: logger.Named("openai_client"),
	}
}

type chatAnalyzer struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

func (a *chatAnalyzer) Analyze(ctx context.Context, prompt, imageURL string) (string, error) {
	requestID, _ := logging.RequestIDFromContext(ctx)
	opLogger := logging.WithOperation(a.logger, "openai.create_chat_completion", requestID)

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: imageURL}},
				},
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		wrapped := logging.NewOperationError("openai.create_chat_completion", requestID, err)
		opLogger.Error("chat completion failed", zap.Error(err), zap.String("model", a.model))
		return "", wrapped
	}
	if len(resp.Choices) == 0 {
		opLogger.Error("chat completion without choices", zap.String("completion_id", resp.ID))
		return "", logging.NewOperationError("openai.create_chat_completion", requestID, ErrNoChoices)
	}

	opLogger.Debug("chat completion received",
		zap.String("completion_id", resp.ID),
		zap.String("finish_reason", string(resp.Choices[0].FinishReason)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)
	return resp.Choices[0].Message.Content, nil
}
