package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/snagasawa/nippo/internal/dateutil"
	"github.com/snagasawa/nippo/internal/domain/worklog"
	"github.com/snagasawa/nippo/internal/repository"
	"github.com/snagasawa/nippo/internal/summarize"
)

// Service runs summarizations over work logs and keeps their history.
type Service struct {
	engine    Engine
	backend   Backend
	summaries Repository
	logger    *slog.Logger
}

// NewService creates a summarization service. backend and summaries may be
// nil; the corresponding features are then disabled.
func NewService(engine Engine, backend Backend, summaries Repository, logger *slog.Logger) *Service {
	return &Service{
		engine:    engine,
		backend:   backend,
		summaries: summaries,
		logger:    logger,
	}
}

// Options controls one summarization run. The backend is used only when
// UseBackend is set explicitly; there is no auto-detection.
type Options struct {
	Method        summarize.Method
	SentenceCount int
	MaxKeyPoints  int
	UseBackend    bool
	BackendKind   string // prompt kind, e.g. "weekly_report"
	MaxTokens     int
}

// SummarizeLogs combines the entries, reduces them with the local engine
// or the remote backend, extracts key points, and computes statistics.
// The result is persisted to the summary history when a repository is
// configured.
func (s *Service) SummarizeLogs(ctx context.Context, logs []worklog.WorkLog, opts Options) (*SummaryResult, error) {
	if opts.SentenceCount <= 0 {
		opts.SentenceCount = 5
	}
	if opts.MaxKeyPoints <= 0 {
		opts.MaxKeyPoints = 10
	}

	corpus := Combine(logs)

	result := &SummaryResult{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
	}

	if opts.UseBackend {
		if s.backend == nil || !s.backend.IsConfigured() {
			return nil, ErrBackendNotConfigured
		}
		chat, err := s.backend.Summarize(ctx, corpus, opts.BackendKind, opts.MaxTokens)
		if err != nil {
			return nil, fmt.Errorf("backend summarization: %w", err)
		}
		result.SummaryText = chat.SummaryText
		result.Method = "chatgpt"
		result.KeyPoints = s.backendKeyPoints(ctx, corpus, opts.MaxKeyPoints)
	} else {
		sentences := s.engine.Summarize(corpus, opts.Method, opts.SentenceCount)
		result.SummaryText = strings.Join(sentences, "\n")
		result.Method = string(opts.Method)
		result.KeyPoints = s.engine.ExtractKeyPoints(corpus, opts.MaxKeyPoints)
	}

	stats := summarize.ComputeStats(corpus, result.SummaryText)
	result.OriginalCount = stats.OriginalCount
	result.WordCount = stats.WordCount
	result.CompressionRatio = stats.CompressionRatio

	if s.summaries != nil {
		if err := s.summaries.Create(ctx, result); err != nil {
			// History is best-effort; the run itself succeeded.
			if s.logger != nil {
				s.logger.Warn("failed to store summary history", "id", result.ID, "error", err)
			}
		}
	}
	return result, nil
}

// backendKeyPoints asks the remote backend for keywords, falling back to
// the local engine when the call fails or yields nothing.
func (s *Service) backendKeyPoints(ctx context.Context, corpus string, maxPoints int) []string {
	points, err := s.backend.ExtractKeywords(ctx, corpus, maxPoints)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("backend keyword extraction failed, using local engine", "error", err)
		}
		return s.engine.ExtractKeyPoints(corpus, maxPoints)
	}
	if len(points) == 0 {
		return s.engine.ExtractKeyPoints(corpus, maxPoints)
	}
	return points
}

// Structured arranges a summarization result with per-day content and
// period information for report rendering.
func (s *Service) Structured(logs []worklog.WorkLog, result *SummaryResult) *StructuredSummary {
	structured := &StructuredSummary{
		Summary:        result.SummaryText,
		KeyPoints:      result.KeyPoints,
		DailySummaries: make(map[string]string),
		Statistics: SummaryStatistics{
			TotalLogs:          len(logs),
			OriginalCharacters: result.OriginalCount,
			SummaryCharacters:  result.WordCount,
			CompressionRatio:   result.CompressionRatio,
		},
		CreatedAt: result.CreatedAt,
	}

	var first, last time.Time
	days := 0
	for _, log := range logs {
		d, err := dateutil.Parse(log.Date)
		if err != nil {
			continue
		}
		days++
		if first.IsZero() || d.Before(first) {
			first = d
		}
		if last.IsZero() || d.After(last) {
			last = d
		}
		if content := strings.TrimSpace(log.Content); content != "" {
			structured.DailySummaries[dateutil.FormatJapanese(d)] = content
		}
	}
	if days > 0 {
		structured.Period = PeriodInfo{
			StartDate: dateutil.FormatJapanese(first),
			EndDate:   dateutil.FormatJapanese(last),
			TotalDays: days,
		}
	}
	return structured
}

// Get returns a stored summary by id.
func (s *Service) Get(ctx context.Context, id string) (*SummaryResult, error) {
	if s.summaries == nil {
		return nil, ErrSummaryNotFound
	}
	result, err := s.summaries.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSummaryNotFound
		}
		return nil, fmt.Errorf("getting summary: %w", err)
	}
	return result, nil
}

// List returns the most recent stored summaries.
func (s *Service) List(ctx context.Context, limit int) ([]SummaryResult, error) {
	if s.summaries == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	results, err := s.summaries.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing summaries: %w", err)
	}
	return results, nil
}

// EditText is the explicit user-edit step: it replaces the summary text
// and stamps the edit timestamp. Counts and ratio keep describing the
// original run.
func (s *Service) EditText(ctx context.Context, id, text string) (*SummaryResult, error) {
	result, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if err := s.summaries.UpdateText(ctx, id, text, now); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSummaryNotFound
		}
		return nil, fmt.Errorf("updating summary: %w", err)
	}
	result.SummaryText = text
	result.EditedAt = &now
	return result, nil
}

// ResultData flattens a summarization run into the mapping consumed by
// the template engine's field resolution.
func ResultData(result *SummaryResult) map[string]any {
	return map[string]any{
		"summary_text": result.SummaryText,
		"keywords":     result.KeyPoints,
		"generated_at": result.CreatedAt.Format(time.RFC3339),
		"method":       result.Method,
		"statistics": map[string]any{
			"original_count":    result.OriginalCount,
			"word_count":        result.WordCount,
			"compression_ratio": result.CompressionRatio,
		},
	}
}
