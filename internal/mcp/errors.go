package mcp

import (
	"errors"
	"fmt"

	"github.com/snagasawa/nippo/internal/domain/summary"
	"github.com/snagasawa/nippo/internal/domain/worklog"
	"github.com/snagasawa/nippo/internal/openai"
	"github.com/snagasawa/nippo/internal/report"
	"github.com/snagasawa/nippo/internal/template"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Errors with no mapping
// return nil and are surfaced as protocol errors instead.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, worklog.ErrLogNotFound):
		return &APIError{Code: "LOG_NOT_FOUND", Message: "work log not found for date", RecoveryHint: "Check the date or list stored dates with get_log_statistics"}
	case errors.Is(err, worklog.ErrInvalidDate):
		return &APIError{Code: "INVALID_DATE", Message: err.Error(), RecoveryHint: "Use YYYY-MM-DD"}
	case errors.Is(err, worklog.ErrEmptyKeyword):
		return &APIError{Code: "EMPTY_KEYWORD", Message: "search keyword is required", RecoveryHint: "Provide a non-empty keyword"}
	case errors.Is(err, summary.ErrSummaryNotFound):
		return &APIError{Code: "SUMMARY_NOT_FOUND", Message: "summary not found", RecoveryHint: "List stored summaries with list_summaries"}
	case errors.Is(err, summary.ErrBackendNotConfigured), errors.Is(err, openai.ErrNotConfigured):
		return &APIError{Code: "BACKEND_NOT_CONFIGURED", Message: "ChatGPT backend not configured", RecoveryHint: "Set NIPPO_OPENAI_API_KEY or use the local method"}
	case errors.Is(err, template.ErrTemplateNotFound):
		return &APIError{Code: "TEMPLATE_NOT_FOUND", Message: err.Error(), RecoveryHint: "List available templates with list_templates"}
	case errors.Is(err, report.ErrUnknownFormat):
		return &APIError{Code: "UNKNOWN_FORMAT", Message: err.Error(), RecoveryHint: "Use one of: text, csv, xlsx"}
	default:
		return nil
	}
}
