package summary

import "errors"

var (
	// ErrSummaryNotFound is returned when no stored summary has the id.
	ErrSummaryNotFound = errors.New("summary not found")

	// ErrBackendNotConfigured is returned when a backend summarization is
	// requested but no backend credential is set.
	ErrBackendNotConfigured = errors.New("summarization backend not configured")
)
