package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLLMService(url string) *LLMService {
	return &LLMService{
		apiKey: "test-key",
		apiURL: url,
		model:  "deepseek-chat",
		client: &http.Client{Timeout: 5 * time.Second},
		retry:  RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond, Multiplier: 2},
	}
}

func chatReply(content string) string {
	reply := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	data, _ := json.Marshal(reply)
	return string(data)
}

func TestRetryPolicyDo(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		policy := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond, Multiplier: 2}

		calls := 0
		err := policy.Do(context.Background(), func() error {
			calls++
			if calls < 3 {
				return fmt.Errorf("transient")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("exhausted attempts surface the last error", func(t *testing.T) {
		policy := RetryPolicy{MaxAttempts: 2, BaseDelay: time.Millisecond, Multiplier: 2}

		err := policy.Do(context.Background(), func() error { return fmt.Errorf("still down") })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed after 2 attempts")
	})

	t.Run("cancelled context stops retries", func(t *testing.T) {
		policy := RetryPolicy{MaxAttempts: 5, BaseDelay: time.Hour, Multiplier: 2}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := policy.Do(ctx, func() error { return fmt.Errorf("down") })
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestGenerate(t *testing.T) {
	t.Run("returns message content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			var req chatRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "deepseek-chat", req.Model)
			require.Len(t, req.Messages, 2)

			fmt.Fprint(w, chatReply(`{"ok": true}`))
		}))
		defer server.Close()

		svc := newTestLLMService(server.URL)
		got, err := svc.Generate(context.Background(), "system", "user")
		require.NoError(t, err)
		assert.Equal(t, `{"ok": true}`, got)
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		svc := newTestLLMService(server.URL)
		_, err := svc.Generate(context.Background(), "system", "user")
		assert.Error(t, err)
	})
}

func TestClassifyFoodImage(t *testing.T) {
	t.Run("retries until a usable classification", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			fmt.Fprint(w, chatReply(`{"food_name": "김치찌개", "confidence": 0.92}`))
		}))
		defer server.Close()

		svc := newTestLLMService(server.URL)
		got, err := svc.ClassifyFoodImage(context.Background(), "red stew with tofu")
		require.NoError(t, err)
		assert.Equal(t, "김치찌개", got)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("exhausted retries surface an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		svc := newTestLLMService(server.URL)
		_, err := svc.ClassifyFoodImage(context.Background(), "blurry photo")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to classify food image")
	})

	t.Run("empty food name is retried as a failure", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			fmt.Fprint(w, chatReply(`{"food_name": "", "confidence": 0.1}`))
		}))
		defer server.Close()

		svc := newTestLLMService(server.URL)
		_, err := svc.ClassifyFoodImage(context.Background(), "unclear")
		require.Error(t, err)
		assert.Equal(t, int32(3), calls.Load())
	})
}
