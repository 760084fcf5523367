package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

func mockUpstream(t *testing.T, status int, body string, got *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if got != nil {
			_ = json.NewDecoder(r.Body).Decode(got)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIChat(t *testing.T) {
	var got capturedRequest
	srv := mockUpstream(t, http.StatusOK, `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"model": "gpt-3.5-turbo",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": "  - Amlodipine lowers blood pressure.\n"}, "finish_reason": "stop"}],
		"usage": {"prompt_tokens": 5, "completion_tokens": 7, "total_tokens": 12}
	}`, &got)

	client := NewOpenAI(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL + "/v1/", Timeout: time.Second})
	out, err := client.Chat(context.Background(), []Message{System("be kind"), User("explain")})

	require.NoError(t, err)
	assert.Equal(t, "- Amlodipine lowers blood pressure.", out)
	assert.Equal(t, DefaultModel, got.Model)
	assert.Equal(t, []Message{System("be kind"), User("explain")}, got.Messages)
}

func TestOpenAIChatNoChoices(t *testing.T) {
	srv := mockUpstream(t, http.StatusOK, `{"id":"x","object":"chat.completion","choices":[]}`, nil)

	client := NewOpenAI(OpenAIConfig{APIKey: "test-key", BaseURL: srv.URL + "/v1", Model: "gpt-4o-mini"})
	_, err := client.Chat(context.Background(), []Message{User("hi")})
	assert.ErrorIs(t, err, ErrNoChoices)
}

func TestOpenAIChatUpstreamError(t *testing.T) {
	srv := mockUpstream(t, http.StatusOK, `{}`, nil)

	client := NewOpenAI(OpenAIConfig{APIKey: "wrong", BaseURL: srv.URL + "/v1"})
	_, err := client.Chat(context.Background(), []Message{User("hi")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "call openai")
}

func TestFakeScript(t *testing.T) {
	f := NewFake("one", "two")
	ctx := context.Background()

	for _, want := range []string{"one", "two", "two"} {
		got, err := f.Chat(ctx, []Message{User("q")})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 3, f.CallCount())
}

func TestFakeFailAt(t *testing.T) {
	boom := errors.New("rate limited")
	f := &Fake{Responses: []string{"ok"}, Err: boom, FailAt: 2}
	ctx := context.Background()

	_, err := f.Chat(ctx, nil)
	require.NoError(t, err)
	_, err = f.Chat(ctx, nil)
	assert.ErrorIs(t, err, boom)
	_, err = f.Chat(ctx, nil)
	require.NoError(t, err)
}
