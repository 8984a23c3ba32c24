package summary

import (
	"context"
	"time"

	"github.com/snagasawa/nippo/internal/openai"
	"github.com/snagasawa/nippo/internal/summarize"
)

// Engine is the local extractive summarization pipeline.
type Engine interface {
	Summarize(text string, method summarize.Method, count int) []string
	ExtractKeyPoints(text string, maxPoints int) []string
}

// Backend is the optional remote summarization service. It replaces the
// reduction step only; keyword extraction and statistics stay local unless
// the caller asks otherwise.
type Backend interface {
	IsConfigured() bool
	Summarize(ctx context.Context, text, kind string, maxTokens int) (*openai.ChatResult, error)
	ExtractKeywords(ctx context.Context, text string, maxKeywords int) ([]string, error)
}

// Repository persists summarization runs.
type Repository interface {
	Create(ctx context.Context, result *SummaryResult) error
	Get(ctx context.Context, id string) (*SummaryResult, error)
	List(ctx context.Context, limit int) ([]SummaryResult, error)
	UpdateText(ctx context.Context, id, text string, editedAt time.Time) error
}
