// Package assistant talks to hosted chat models. Each provider turns a
// conversation (plus an optional image) into a single free-text reply.
package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultMaxTokens = 1024
	defaultMIMEType  = "image/jpeg"
)

// ErrEmptyReply is returned when a provider answers without any text.
var ErrEmptyReply = errors.New("assistant: empty reply")

// Client produces a reply for a conversation.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Message is one turn of the conversation. Role is user, assistant or system.
type Message struct {
	Role    string
	Content string
}

// Image is an inline base64 picture attached to the last user turn.
type Image struct {
	MIMEType string
	Data     string
}

// Request is a provider-neutral completion request.
type Request struct {
	Messages []Message
	Image    *Image
}

// lastText returns the text of the final message, which is the one an
// attached image belongs to.
func (r Request) lastText() string {
	if len(r.Messages) == 0 {
		return ""
	}
	return r.Messages[len(r.Messages)-1].Content
}

// ParseDataURL splits a "data:<mime>;base64,<payload>" URL. A bare base64
// payload is accepted and assumed to be JPEG. ok is false for empty input.
func ParseDataURL(raw string) (*Image, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	if !strings.HasPrefix(raw, "data:") {
		return &Image{MIMEType: defaultMIMEType, Data: raw}, true
	}
	header, payload, found := strings.Cut(strings.TrimPrefix(raw, "data:"), ",")
	if !found || payload == "" {
		return nil, false
	}
	mime := strings.TrimSuffix(header, ";base64")
	if mime == "" {
		mime = defaultMIMEType
	}
	return &Image{MIMEType: mime, Data: payload}, true
}

// Option customises the underlying resty client.
type Option func(*resty.Client)

// WithBaseURL points a client at another host, typically a test server.
func WithBaseURL(url string) Option {
	return func(c *resty.Client) { c.SetBaseURL(strings.TrimSuffix(url, "/")) }
}

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) { c.SetTimeout(d) }
}

func newHTTPClient(baseURL string, opts []Option) *resty.Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(defaultTimeout)
	for _, opt := range opts {
		opt(client)
	}
	return client
}
