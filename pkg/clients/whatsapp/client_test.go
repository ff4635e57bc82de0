package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hingaguru/farmdesk/internal/config"
)

func TestSendText_PostsToPhoneNumberEndpoint(t *testing.T) {
	var got textMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v20.0/12345/messages", r.URL.Path)
		require.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer srv.Close()

	client := NewClient(config.WhatsAppConfig{
		AccessToken:   "token",
		PhoneNumberID: "12345",
		BaseURL:       srv.URL + "/",
		APIVersion:    "v20.0",
	})

	id, err := client.SendText(context.Background(), "+250 700-000 000", "hello")
	require.NoError(t, err)
	require.Equal(t, "wamid.1", id)
	require.Equal(t, "250700000000", got.To)
	require.Equal(t, "hello", got.Text.Body)
	require.Equal(t, "whatsapp", got.MessagingProduct)
}

func TestSendText_SurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid parameter","code":100}}`))
	}))
	defer srv.Close()

	client := NewClient(config.WhatsAppConfig{PhoneNumberID: "1", BaseURL: srv.URL, APIVersion: "v20.0"})

	_, err := client.SendText(context.Background(), "250700000000", "hi")
	require.ErrorContains(t, err, "code=100")
	require.ErrorContains(t, err, "Invalid parameter")
}

func TestSendText_RequiresRecipient(t *testing.T) {
	client := NewClient(config.WhatsAppConfig{BaseURL: "http://unused", APIVersion: "v20.0"})
	_, err := client.SendText(context.Background(), "n/a", "hi")
	require.ErrorIs(t, err, ErrNoRecipient)
}
