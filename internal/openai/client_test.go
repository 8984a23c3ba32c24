package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient("test-key", "gpt-3.5-turbo").WithBaseURL(srv.URL)
	return client, srv
}

func chatReply(content string, tokens int) []byte {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
		"usage": map[string]int{"total_tokens": tokens},
	})
	return body
}

func TestClientNotConfigured(t *testing.T) {
	client := NewClient("", "")

	assert.False(t, client.IsConfigured())

	_, err := client.Summarize(context.Background(), "text", KindQuickSummary, 100)
	require.ErrorIs(t, err, ErrNotConfigured)

	_, err = client.ExtractKeywords(context.Background(), "text", 5)
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestClientSummarize(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write(chatReply("要約されたテキストです。", 42))
	})

	result, err := client.Summarize(context.Background(), "今日はAPIの実装を進めた。", KindDailyReport, 500)
	require.NoError(t, err)

	assert.Equal(t, "要約されたテキストです。", result.SummaryText)
	assert.Equal(t, KindDailyReport, result.SummaryKind)
	assert.Equal(t, 42, result.TokensUsed)
	assert.Equal(t, "gpt-3.5-turbo", result.Model)
	assert.False(t, result.GeneratedAt.IsZero())

	assert.Equal(t, "Bearer test-key", gotAuth)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, systemPrompt, gotReq.Messages[0].Content)
	assert.Contains(t, gotReq.Messages[1].Content, "今日はAPIの実装を進めた。")
	assert.Equal(t, 500, gotReq.MaxTokens)
}

func TestClientSummarizeUnknownKindFallsBack(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(chatReply("ok", 1))
	})

	result, err := client.Summarize(context.Background(), "text", "no_such_kind", 100)
	require.NoError(t, err)
	assert.Equal(t, KindQuickSummary, result.SummaryKind)
}

func TestClientSummarizeAPIError(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "Incorrect API key provided", "type": "invalid_request_error"},
		})
	})

	_, err := client.Summarize(context.Background(), "text", KindQuickSummary, 100)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API呼び出しエラー (401)")
	assert.Contains(t, err.Error(), "Incorrect API key provided")
}

func TestClientExtractKeywords(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(chatReply("設計, 実装, レビュー, テスト, リリース", 20))
	})

	keywords, err := client.ExtractKeywords(context.Background(), "text", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"設計", "実装", "レビュー"}, keywords)
}

func TestClientTestConnection(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(chatReply("こんにちは", 8))
	})

	result := client.TestConnection(context.Background())
	assert.True(t, result.Success)
	assert.Equal(t, "gpt-3.5-turbo", result.Model)
	assert.Equal(t, 8, result.TokensUsed)
	assert.Empty(t, result.Error)
}

func TestClientTestConnectionFailure(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"server overloaded"}}`))
	})

	result := client.TestConnection(context.Background())
	assert.False(t, result.Success)
	assert.True(t, strings.Contains(result.Error, "server overloaded"))

	unconfigured := NewClient("", "")
	result = unconfigured.TestConnection(context.Background())
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "APIキー")
}
