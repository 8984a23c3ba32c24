package worklog

import "time"

// WorkLog is one calendar date's free-text note. The date string
// (YYYY-MM-DD) is the unique key within the store.
type WorkLog struct {
	Date      string    `json:"date"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Statistics summarizes the whole log store.
type Statistics struct {
	TotalLogs         int    `json:"total_logs"`
	FirstLogDate      string `json:"first_log_date,omitempty"`
	LastLogDate       string `json:"last_log_date,omitempty"`
	TotalCharacters   int    `json:"total_characters"`
	AverageCharacters int    `json:"average_characters_per_log"`
}
