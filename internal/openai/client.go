// Package openai implements the remote summarization backend against the
// OpenAI chat completions API. It is a drop-in alternative reducer for the
// local extractive engine; the core never calls it implicitly.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.openai.com/v1"

// ErrNotConfigured is returned when the client is used without an API key.
// It is distinct from request failures so callers can surface a
// configuration problem instead of a network one.
var ErrNotConfigured = errors.New("openai: APIキーが設定されていません")

// Client calls the chat completions endpoint with the work-log prompt
// templates.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewClient creates a backend client. The request timeout is fixed.
func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// WithBaseURL overrides the API endpoint. Used by tests.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// IsConfigured reports whether an API key is set.
func (c *Client) IsConfigured() bool {
	return strings.TrimSpace(c.apiKey) != ""
}

// ChatResult is one backend summarization response.
type ChatResult struct {
	SummaryText string    `json:"summary_text"`
	SummaryKind string    `json:"summary_kind"`
	Model       string    `json:"model"`
	TokensUsed  int       `json:"tokens_used"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ConnectionResult reports the outcome of TestConnection.
type ConnectionResult struct {
	Success    bool   `json:"success"`
	Model      string `json:"model,omitempty"`
	TokensUsed int    `json:"tokens_used,omitempty"`
	Error      string `json:"error,omitempty"`
}

// OpenAI API request/response types

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Usage   chatUsage    `json:"usage"`
	Error   *apiError    `json:"error,omitempty"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatUsage struct {
	TotalTokens int `json:"total_tokens"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Summarize reduces text with the prompt template selected by kind.
func (c *Client) Summarize(ctx context.Context, text, kind string, maxTokens int) (*ChatResult, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}
	if maxTokens <= 0 {
		maxTokens = 1000
	}
	if _, ok := promptTemplates[kind]; !ok {
		kind = KindQuickSummary
	}

	content, tokens, err := c.callAPI(ctx, fmt.Sprintf(promptFor(kind), text), maxTokens)
	if err != nil {
		return nil, err
	}

	return &ChatResult{
		SummaryText: content,
		SummaryKind: kind,
		Model:       c.model,
		TokensUsed:  tokens,
		GeneratedAt: time.Now(),
	}, nil
}

// ExtractKeywords asks the backend for a comma-separated keyword list.
func (c *Client) ExtractKeywords(ctx context.Context, text string, maxKeywords int) ([]string, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}
	if maxKeywords <= 0 {
		maxKeywords = 10
	}

	content, _, err := c.callAPI(ctx, fmt.Sprintf(promptFor(KindExtractKeywords), text), 200)
	if err != nil {
		return nil, err
	}

	var keywords []string
	for _, kw := range strings.Split(content, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords, nil
}

// TestConnection makes a minimal API call and reports success or the
// failure cause. It never returns an error.
func (c *Client) TestConnection(ctx context.Context) *ConnectionResult {
	if !c.IsConfigured() {
		return &ConnectionResult{Success: false, Error: "APIキーが設定されていません"}
	}
	_, tokens, err := c.callAPI(ctx, "こんにちは！接続テストです。", 10)
	if err != nil {
		return &ConnectionResult{Success: false, Error: err.Error()}
	}
	return &ConnectionResult{Success: true, Model: c.model, TokensUsed: tokens}
}

func (c *Client) callAPI(ctx context.Context, prompt string, maxTokens int) (string, int, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.7,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", 0, fmt.Errorf("openai: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", 0, fmt.Errorf("openai: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("openai: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("openai: failed to read response: %w", err)
	}

	var apiResp chatResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", 0, fmt.Errorf("openai: failed to parse response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		detail := "不明なエラー"
		if apiResp.Error != nil && apiResp.Error.Message != "" {
			detail = apiResp.Error.Message
		}
		return "", 0, fmt.Errorf("openai: API呼び出しエラー (%d): %s", resp.StatusCode, detail)
	}

	if len(apiResp.Choices) == 0 {
		return "", 0, fmt.Errorf("openai: empty response")
	}

	return strings.TrimSpace(apiResp.Choices[0].Message.Content), apiResp.Usage.TotalTokens, nil
}
