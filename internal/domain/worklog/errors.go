package worklog

import "errors"

var (
	// ErrLogNotFound is returned when no log exists for a date.
	ErrLogNotFound = errors.New("work log not found")

	// ErrInvalidDate is returned for dates not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date")

	// ErrEmptyKeyword is returned when search is called without a keyword.
	ErrEmptyKeyword = errors.New("empty search keyword")
)
