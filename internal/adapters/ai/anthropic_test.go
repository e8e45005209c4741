package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteReturnsText(t *testing.T) {
	var gotReq messagesRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.Equal(t, apiVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(messagesResponse{
			Content: []contentBlock{{Type: "text", Text: "No issues found."}},
		})
	}))
	defer srv.Close()

	client, err := NewAnthropicClient("secret", "claude-3-5-sonnet-20241022", WithBaseURL(srv.URL))
	require.NoError(t, err)

	reply, err := client.Complete(context.Background(), "Audit this contract")
	require.NoError(t, err)
	assert.Equal(t, "No issues found.", reply)

	assert.Equal(t, "claude-3-5-sonnet-20241022", gotReq.Model)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "user", gotReq.Messages[0].Role)
	assert.Equal(t, "Audit this contract", gotReq.Messages[0].Content)
}

func TestCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(messagesResponse{
			Error: &apiError{Type: "rate_limit_error", Message: "slow down"},
		})
	}))
	defer srv.Close()

	client, err := NewAnthropicClient("secret", "claude-3-5-sonnet-20241022", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate_limit_error")
}

func TestNewAnthropicClientRequiresKey(t *testing.T) {
	_, err := NewAnthropicClient("", "claude-3-5-sonnet-20241022")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
