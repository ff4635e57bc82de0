package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com"

// GeminiClient calls the Gemini generateContent endpoint.
type GeminiClient struct {
	httpClient *resty.Client
	model      string
}

func NewGeminiClient(apiKey, model string, opts ...Option) *GeminiClient {
	client := newHTTPClient(geminiBaseURL, opts)
	client.SetHeader("x-goog-api-key", apiKey)
	return &GeminiClient{httpClient: client, model: model}
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Complete sends the history as alternating user/model turns. The last turn is
// always sent as the user, with the image attached when present.
func (c *GeminiClient) Complete(ctx context.Context, req Request) (string, error) {
	body := geminiRequest{}
	if n := len(req.Messages); n > 1 {
		for _, m := range req.Messages[:n-1] {
			role := "model"
			if m.Role == "user" {
				role = "user"
			}
			body.Contents = append(body.Contents, geminiContent{Role: role, Parts: []geminiPart{{Text: m.Content}}})
		}
	}
	last := []geminiPart{{Text: req.lastText()}}
	if req.Image != nil {
		last = append(last, geminiPart{InlineData: &geminiInlineData{MIMEType: req.Image.MIMEType, Data: req.Image.Data}})
	}
	body.Contents = append(body.Contents, geminiContent{Role: "user", Parts: last})

	var out geminiResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))
	if err != nil {
		return "", fmt.Errorf("gemini api call: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("gemini api error: status=%d body=%s", resp.StatusCode(), resp.String())
	}
	if len(out.Candidates) == 0 {
		return "", ErrEmptyReply
	}

	texts := make([]string, 0, len(out.Candidates[0].Content.Parts))
	for _, p := range out.Candidates[0].Content.Parts {
		texts = append(texts, p.Text)
	}
	reply := strings.TrimSpace(strings.Join(texts, "\n"))
	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}
