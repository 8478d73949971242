package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"schema-mapper/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	answers map[string]string
	err     error
	calls   int
}

func (f *fakeClient) SuggestModel(ctx context.Context, endpoint types.UnmappedEndpoint, models []string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.answers[endpoint.Path], nil
}

func newChatServer(t *testing.T, content string) (*httptest.Server, *string) {
	t.Helper()
	var lastPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.Unmarshal(body, &req)
		if len(req.Messages) > 0 {
			lastPrompt = req.Messages[len(req.Messages)-1].Content
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-4",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"message":       map[string]string{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &lastPrompt
}

func TestOpenAIClient_SuggestModel(t *testing.T) {
	srv, prompt := newChatServer(t, " \"users\" ")

	cfg := NewDefaultConfig()
	cfg.APIKey = "test-key"
	cfg.BaseURL = srv.URL + "/v1"
	client := NewOpenAIClient(cfg, nil)

	endpoint := types.UnmappedEndpoint{Method: "GET", Path: "/members", Reason: `No matching model found for "members"`}
	answer, err := client.SuggestModel(context.Background(), endpoint, []string{"users", "orders"})
	require.NoError(t, err)
	assert.Equal(t, "users", answer)
	assert.Contains(t, *prompt, "GET /members")
	assert.Contains(t, *prompt, "users, orders")
}

func TestOpenAIClient_NoSuggestion(t *testing.T) {
	srv, _ := newChatServer(t, "None")

	cfg := NewDefaultConfig()
	cfg.APIKey = "test-key"
	cfg.BaseURL = srv.URL + "/v1"
	client := NewOpenAIClient(cfg, nil)

	answer, err := client.SuggestModel(context.Background(), types.UnmappedEndpoint{Method: "GET", Path: "/x"}, []string{"users"})
	require.NoError(t, err)
	assert.Empty(t, answer)
}

func TestOpenAIClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom","type":"server_error"}}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := NewDefaultConfig()
	cfg.APIKey = "test-key"
	cfg.BaseURL = srv.URL + "/v1"
	client := NewOpenAIClient(cfg, nil)

	_, err := client.SuggestModel(context.Background(), types.UnmappedEndpoint{Method: "GET", Path: "/x"}, []string{"users"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to suggest model")
}

func TestBaseClient_NoModelsSkipsCall(t *testing.T) {
	called := false
	c := NewBaseClient(NewDefaultConfig(), nil, func(ctx context.Context, prompt string) (string, error) {
		called = true
		return "users", nil
	})
	answer, err := c.SuggestModel(context.Background(), types.UnmappedEndpoint{Path: "/x"}, nil)
	require.NoError(t, err)
	assert.Empty(t, answer)
	assert.False(t, called)
}

func TestNewClient(t *testing.T) {
	cfg := NewDefaultConfig()
	_, err := NewClient(cfg, nil)
	assert.Error(t, err, "missing key")

	cfg.APIKey = "k"
	client, err := NewClient(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, client)

	cfg.Provider = "anthropic"
	_, err = NewClient(cfg, nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unsupported LLM provider"))
}

func TestRefine(t *testing.T) {
	result := &types.InferenceResult{
		AvailableModels: []string{"users", "order_items"},
		Unmapped: []types.UnmappedEndpoint{
			{Method: "GET", Path: "/members", SuggestedModel: "members"},
			{Method: "GET", Path: "/lines", SuggestedModel: "lines"},
			{Method: "GET", Path: "/misc", SuggestedModel: "misc"},
			{Method: "GET", Path: "/people", SuggestedModel: "people"},
		},
	}
	client := &fakeClient{answers: map[string]string{
		"/members": "user",
		"/lines":   "order-items",
		"/misc":    "widgets",
	}}

	refined, err := Refine(context.Background(), client, result)
	require.NoError(t, err)
	assert.Equal(t, 2, refined)
	assert.Equal(t, 4, client.calls)

	assert.Equal(t, "users", result.Unmapped[0].SuggestedModel)
	assert.Equal(t, "order_items", result.Unmapped[1].SuggestedModel)
	assert.Equal(t, "misc", result.Unmapped[2].SuggestedModel, "unknown answers leave the suggestion alone")
	assert.Equal(t, "people", result.Unmapped[3].SuggestedModel)
	assert.Empty(t, result.Mappings)
}

func TestRefine_ClientErrorsAreTolerated(t *testing.T) {
	result := &types.InferenceResult{
		AvailableModels: []string{"users"},
		Unmapped:        []types.UnmappedEndpoint{{Path: "/members", SuggestedModel: "members"}},
	}
	refined, err := Refine(context.Background(), &fakeClient{err: errors.New("rate limited")}, result)
	require.NoError(t, err)
	assert.Zero(t, refined)
	assert.Equal(t, "members", result.Unmapped[0].SuggestedModel)
}

func TestRefine_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := &types.InferenceResult{
		AvailableModels: []string{"users"},
		Unmapped:        []types.UnmappedEndpoint{{Path: "/members"}},
	}
	_, err := Refine(ctx, &fakeClient{}, result)
	assert.ErrorIs(t, err, context.Canceled)
}
