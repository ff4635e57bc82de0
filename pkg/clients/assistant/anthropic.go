package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

const (
	anthropicBaseURL    = "https://api.anthropic.com"
	anthropicAPIVersion = "2023-06-01"
)

// AnthropicClient calls the Messages API.
type AnthropicClient struct {
	httpClient *resty.Client
	model      string
}

func NewAnthropicClient(apiKey, model string, opts ...Option) *AnthropicClient {
	client := newHTTPClient(anthropicBaseURL, opts)
	client.SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", anthropicAPIVersion)
	return &AnthropicClient{httpClient: client, model: model}
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type anthropicBlock struct {
	Type   string           `json:"type"`
	Text   string           `json:"text,omitempty"`
	Source *anthropicSource `json:"source,omitempty"`
}

type anthropicSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Complete lifts system turns into the system prompt, since the Messages API
// only accepts user and assistant roles.
func (c *AnthropicClient) Complete(ctx context.Context, req Request) (string, error) {
	body := anthropicRequest{Model: c.model, MaxTokens: defaultMaxTokens}
	var system []string
	for _, m := range req.Messages {
		if m.Role == "system" {
			system = append(system, m.Content)
			continue
		}
		body.Messages = append(body.Messages, anthropicMessage{Role: m.Role, Content: m.Content})
	}
	body.System = strings.Join(system, "\n")

	if req.Image != nil && len(body.Messages) > 0 {
		last := &body.Messages[len(body.Messages)-1]
		text, _ := last.Content.(string)
		last.Content = []anthropicBlock{
			{Type: "image", Source: &anthropicSource{Type: "base64", MediaType: req.Image.MIMEType, Data: req.Image.Data}},
			{Type: "text", Text: text},
		}
	}

	var out anthropicResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post("/v1/messages")
	if err != nil {
		return "", fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("anthropic api error: %s", resp.String())
	}
	if len(out.Content) == 0 || strings.TrimSpace(out.Content[0].Text) == "" {
		return "", ErrEmptyReply
	}
	return strings.TrimSpace(out.Content[0].Text), nil
}
