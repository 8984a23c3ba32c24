package summary

import "time"

// SummaryResult is the output of one summarization run. It is immutable
// once constructed except for the explicit user-edit step, which replaces
// SummaryText and stamps EditedAt.
type SummaryResult struct {
	ID               string     `json:"id"`
	SummaryText      string     `json:"summary_text"`
	KeyPoints        []string   `json:"key_points"`
	WordCount        int        `json:"word_count"`
	OriginalCount    int        `json:"original_count"`
	CompressionRatio float64    `json:"compression_ratio"`
	Method           string     `json:"method"`
	CreatedAt        time.Time  `json:"created_at"`
	EditedAt         *time.Time `json:"edited_at,omitempty"`
}

// PeriodInfo describes the date range a structured summary covers.
type PeriodInfo struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	TotalDays int    `json:"total_days"`
}

// StructuredSummary arranges a summarization run for report rendering:
// the reduced text plus per-day content, period, and size statistics.
type StructuredSummary struct {
	Summary        string            `json:"summary"`
	KeyPoints      []string          `json:"key_points"`
	DailySummaries map[string]string `json:"daily_summaries"`
	Period         PeriodInfo        `json:"period_info"`
	Statistics     SummaryStatistics `json:"statistics"`
	CreatedAt      time.Time         `json:"created_at"`
}

// SummaryStatistics is the size block of a structured summary.
type SummaryStatistics struct {
	TotalLogs          int     `json:"total_logs"`
	OriginalCharacters int     `json:"original_characters"`
	SummaryCharacters  int     `json:"summary_characters"`
	CompressionRatio   float64 `json:"compression_ratio"`
}
