package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domai "github.com/bagaspn/resumeiq/internal/domain/ai"
)

func completionBody(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"model":   "llama3-70b-8192",
		"choices": []map[string]any{
			{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": content,
				},
			},
		},
	}
}

func newTestClient(url string) *Client {
	return NewClient(Options{
		APIKey:      "test-key",
		BaseURL:     url + "/v1",
		Model:       "llama3-70b-8192",
		MaxRetries:  3,
		BackoffBase: time.Millisecond,
	})
}

func TestClientComplete(t *testing.T) {
	req := domai.CompletionRequest{System: "system", User: "user", MaxTokens: 100}

	t.Run("success on first attempt", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(completionBody(`{"score_out_of_100": 80}`))
		}))
		defer srv.Close()

		comp, err := newTestClient(srv.URL).Complete(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, `{"score_out_of_100": 80}`, comp.Text)
		assert.Equal(t, 1, comp.Attempt)
	})

	t.Run("transient failures are retried", func(t *testing.T) {
		var calls int64
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			n := atomic.AddInt64(&calls, 1)
			if n < 3 {
				http.Error(w, `{"error": {"message": "upstream hiccup"}}`, http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(completionBody(`{"ok": true}`))
		}))
		defer srv.Close()

		comp, err := newTestClient(srv.URL).Complete(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 3, comp.Attempt)
		assert.EqualValues(t, 3, atomic.LoadInt64(&calls))
	})

	t.Run("exhausted retries return a terminal error", func(t *testing.T) {
		var calls int64
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt64(&calls, 1)
			http.Error(w, `{"error": {"message": "still down"}}`, http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Complete(context.Background(), req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domai.ErrExhausted))
		assert.EqualValues(t, 3, atomic.LoadInt64(&calls))
	})

	t.Run("quota errors are classified", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error": {"message": "rate limit reached", "type": "tokens"}}`, http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Complete(context.Background(), req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domai.ErrQuotaExceeded))
	})

	t.Run("empty completion is terminal and never retried", func(t *testing.T) {
		var calls int64
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt64(&calls, 1)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(completionBody("   "))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Complete(context.Background(), req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domai.ErrEmptyCompletion))
		assert.EqualValues(t, 1, atomic.LoadInt64(&calls))
	})

	t.Run("cancelled context stops the retry loop", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error": {"message": "down"}}`, http.StatusInternalServerError)
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newTestClient(srv.URL).Complete(ctx, req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Options{APIKey: "k"})
	assert.Equal(t, "llama3-70b-8192", c.model)
	assert.Equal(t, 3, c.maxRetries)
	assert.Equal(t, time.Second, c.backoffBase)
}
