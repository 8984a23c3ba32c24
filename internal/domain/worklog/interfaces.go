package worklog

import "context"

// Repository manages work-log persistence.
type Repository interface {
	Upsert(ctx context.Context, log *WorkLog) error
	Get(ctx context.Context, date string) (*WorkLog, error)
	Range(ctx context.Context, start, end string) ([]WorkLog, error)
	Delete(ctx context.Context, date string) error
	Dates(ctx context.Context) ([]string, error)
	Search(ctx context.Context, keyword, start, end string) ([]WorkLog, error)
}
