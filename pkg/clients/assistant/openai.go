package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

const openAIBaseURL = "https://api.openai.com"

// OpenAIClient calls the chat completions endpoint.
type OpenAIClient struct {
	httpClient *resty.Client
	model      string
}

func NewOpenAIClient(apiKey, model string, opts ...Option) *OpenAIClient {
	client := newHTTPClient(openAIBaseURL, opts)
	client.SetAuthToken(apiKey)
	return &OpenAIClient{httpClient: client, model: model}
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type openAIContentPart struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *openAIImageURL `json:"image_url,omitempty"`
}

type openAIImageURL struct {
	URL string `json:"url"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	body := openAIRequest{Model: c.model, Temperature: 0.4}
	for _, m := range req.Messages {
		body.Messages = append(body.Messages, openAIMessage{Role: m.Role, Content: m.Content})
	}
	if req.Image != nil && len(body.Messages) > 0 {
		dataURL := fmt.Sprintf("data:%s;base64,%s", req.Image.MIMEType, req.Image.Data)
		body.Messages[len(body.Messages)-1].Content = []openAIContentPart{
			{Type: "text", Text: req.lastText()},
			{Type: "image_url", ImageURL: &openAIImageURL{URL: dataURL}},
		}
	}

	var out openAIResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post("/v1/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openai api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("openai api error: status=%d body=%s", resp.StatusCode(), resp.String())
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", ErrEmptyReply
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
