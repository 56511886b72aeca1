package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helmcode/scriptmonkey/pkg/model"
)

func claudeReply(text string) string {
	b, _ := json.Marshal(map[string]any{
		"id":   "msg_1",
		"type": "message",
		"role": "assistant",
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
	})
	return string(b)
}

func TestClaude_ChatJSON(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "sk-ant", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))

		_, _ = io.WriteString(w, claudeReply("```json\n{\"problem\":\"p\",\"solution\":\"s\",\"corrected_code\":\"print(1)\\n\"}\n```"))
	}))
	defer srv.Close()

	client := NewClaude(Config{APIKey: "sk-ant", BaseURL: srv.URL})
	var got model.PatchResult
	err := client.ChatJSON(context.Background(), "fix it", "code", "patch_result", &got)

	require.NoError(t, err)
	assert.Equal(t, "print(1)\n", got.CorrectedCode)
	assert.Contains(t, captured["system"], "fix it")
	assert.Contains(t, captured["system"], "corrected_code")
	assert.Equal(t, defaultClaudeModel, captured["model"])
}

func TestClaude_Chat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, claudeReply("answer"))
	}))
	defer srv.Close()

	client := NewClaude(Config{APIKey: "k", BaseURL: srv.URL + "/"})
	got, err := client.Chat(context.Background(), "q")

	require.NoError(t, err)
	assert.Equal(t, "answer", got)
	assert.Equal(t, ProviderClaude, client.Provider())
}

func TestClaude_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`)
	}))
	defer srv.Close()

	client := NewClaude(Config{APIKey: "k", BaseURL: srv.URL})
	_, err := client.Chat(context.Background(), "q")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "slow down", apiErr.Message)
}

func TestClaude_EmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"content":[]}`)
	}))
	defer srv.Close()

	_, err := NewClaude(Config{APIKey: "k", BaseURL: srv.URL}).Chat(context.Background(), "q")
	assert.ErrorContains(t, err, "empty response")
}
