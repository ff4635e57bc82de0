// Package advisor forwards crop questions and disease photos to a hosted chat
// model. It always produces a reply: missing configuration and provider
// failures turn into canned answers.
package advisor

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/hingaguru/farmdesk/internal/config"
	"github.com/hingaguru/farmdesk/internal/domain/models"
	"github.com/hingaguru/farmdesk/pkg/clients/assistant"
)

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Canned replies.
const (
	ImageFallback    = "I received your image. It may show signs of disease; ensure clear, well-lit photos for accurate analysis."
	TextFallback     = "AI is not configured yet (set OPENAI_API_KEY or GEMINI_API_KEY). Here's a sample tip: Rotate crops and mulch to conserve moisture."
	ProviderFallback = "I couldn't generate a response."
)

// Service routes chat requests to the configured providers.
type Service struct {
	providers       map[string]assistant.Client
	defaultProvider string
	logger          *zap.Logger
}

// NewService registers the given providers by name. Nil clients are skipped.
func NewService(providers map[string]assistant.Client, defaultProvider string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	registered := make(map[string]assistant.Client, len(providers))
	for name, client := range providers {
		if client != nil {
			registered[name] = client
		}
	}
	return &Service{providers: registered, defaultProvider: defaultProvider, logger: logger}
}

// NewFromConfig builds a client for each provider with an API key.
func NewFromConfig(cfg config.AIConfig, logger *zap.Logger, opts ...assistant.Option) *Service {
	providers := map[string]assistant.Client{}
	if cfg.GeminiKey != "" {
		providers[ProviderGemini] = assistant.NewGeminiClient(cfg.GeminiKey, cfg.GeminiModel, opts...)
	}
	if cfg.OpenAIKey != "" {
		providers[ProviderOpenAI] = assistant.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel, opts...)
	}
	if cfg.AnthropicKey != "" {
		providers[ProviderAnthropic] = assistant.NewAnthropicClient(cfg.AnthropicKey, cfg.AnthropicModel, opts...)
	}
	return NewService(providers, cfg.DefaultProvider, logger)
}

// Chat answers the conversation with the provider named by req.Model, or the
// default provider when the model is empty or unknown.
func (s *Service) Chat(ctx context.Context, req models.ChatRequest) models.ChatReply {
	image, hasImage := assistant.ParseDataURL(req.ImageDataURL)

	name := strings.ToLower(strings.TrimSpace(req.Model))
	client, ok := s.providers[name]
	if !ok {
		name = s.defaultProvider
		client, ok = s.providers[name]
	}
	if !ok {
		if hasImage {
			return models.ChatReply{Reply: ImageFallback}
		}
		return models.ChatReply{Reply: TextFallback}
	}

	messages := make([]assistant.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, assistant.Message{Role: m.Role, Content: m.Content})
	}

	reply, err := client.Complete(ctx, assistant.Request{Messages: messages, Image: image})
	if err != nil {
		s.logger.Warn("assistant request failed", zap.String("provider", name), zap.Bool("image", hasImage), zap.Error(err))
		return models.ChatReply{Reply: ProviderFallback}
	}
	return models.ChatReply{Reply: reply}
}
