package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDataURL(t *testing.T) {
	img, ok := ParseDataURL("data:image/png;base64,QUJD")
	require.True(t, ok)
	require.Equal(t, "image/png", img.MIMEType)
	require.Equal(t, "QUJD", img.Data)

	img, ok = ParseDataURL("QUJD")
	require.True(t, ok)
	require.Equal(t, "image/jpeg", img.MIMEType)

	_, ok = ParseDataURL("data:image/png;base64,")
	require.False(t, ok)

	_, ok = ParseDataURL("  ")
	require.False(t, ok)
}

func jsonServer(t *testing.T, path string, capture any, response string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, path, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(capture))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGeminiClient_Complete(t *testing.T) {
	var got geminiRequest
	srv := jsonServer(t, "/v1beta/models/gemini-test:generateContent", &got,
		`{"candidates":[{"content":{"parts":[{"text":"Spray copper"},{"text":"weekly."}]}}]}`)

	client := NewGeminiClient("key", "gemini-test", WithBaseURL(srv.URL))
	reply, err := client.Complete(context.Background(), Request{
		Messages: []Message{
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
			{Role: "user", Content: "what is this?"},
		},
		Image: &Image{MIMEType: "image/png", Data: "QUJD"},
	})
	require.NoError(t, err)
	require.Equal(t, "Spray copper\nweekly.", reply)

	require.Len(t, got.Contents, 3)
	require.Equal(t, "model", got.Contents[1].Role)
	require.Equal(t, "user", got.Contents[2].Role)
	require.Len(t, got.Contents[2].Parts, 2)
	require.Equal(t, "image/png", got.Contents[2].Parts[1].InlineData.MIMEType)
}

func TestGeminiClient_EmptyCandidates(t *testing.T) {
	var got geminiRequest
	srv := jsonServer(t, "/v1beta/models/m:generateContent", &got, `{"candidates":[]}`)

	_, err := NewGeminiClient("key", "m", WithBaseURL(srv.URL)).Complete(context.Background(), Request{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	require.ErrorIs(t, err, ErrEmptyReply)
}

func TestOpenAIClient_Complete(t *testing.T) {
	var got map[string]any
	srv := jsonServer(t, "/v1/chat/completions", &got, `{"choices":[{"message":{"content":" Mulch. "}}]}`)

	client := NewOpenAIClient("key", "gpt-test", WithBaseURL(srv.URL))
	reply, err := client.Complete(context.Background(), Request{
		Messages: []Message{{Role: "user", Content: "tip?"}},
		Image:    &Image{MIMEType: "image/jpeg", Data: "QUJD"},
	})
	require.NoError(t, err)
	require.Equal(t, "Mulch.", reply)
	require.Equal(t, "gpt-test", got["model"])

	messages := got["messages"].([]any)
	last := messages[0].(map[string]any)
	parts := last["content"].([]any)
	require.Len(t, parts, 2)
	require.Equal(t, "data:image/jpeg;base64,QUJD", parts[1].(map[string]any)["image_url"].(map[string]any)["url"])
}

func TestAnthropicClient_LiftsSystemPrompt(t *testing.T) {
	var got anthropicRequest
	srv := jsonServer(t, "/v1/messages", &got, `{"content":[{"text":"Rotate crops."}]}`)

	client := NewAnthropicClient("key", "claude-test", WithBaseURL(srv.URL))
	reply, err := client.Complete(context.Background(), Request{
		Messages: []Message{
			{Role: "system", Content: "You are an agronomist."},
			{Role: "user", Content: "tip?"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "Rotate crops.", reply)
	require.Equal(t, "You are an agronomist.", got.System)
	require.Len(t, got.Messages, 1)
	require.Equal(t, "user", got.Messages[0].Role)
}

func TestClient_HTTPErrorIsReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewOpenAIClient("key", "m", WithBaseURL(srv.URL)).Complete(context.Background(), Request{
		Messages: []Message{{Role: "user", Content: "hi"}},
	})
	require.ErrorContains(t, err, "status=500")
}
