package worklog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/snagasawa/nippo/internal/dateutil"
	"github.com/snagasawa/nippo/internal/repository"
)

// Service handles work-log business logic.
type Service struct {
	logs   Repository
	logger *slog.Logger
}

// NewService creates a new work-log service.
func NewService(logs Repository, logger *slog.Logger) *Service {
	return &Service{logs: logs, logger: logger}
}

// Save creates or updates the log for a date. CreatedAt is preserved
// across updates; UpdatedAt is refreshed on every save.
func (s *Service) Save(ctx context.Context, date, content string, tags []string) (*WorkLog, error) {
	if _, err := dateutil.Parse(date); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	now := time.Now()
	log := &WorkLog{
		Date:      date,
		Content:   content,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	existing, err := s.logs.Get(ctx, date)
	switch {
	case err == nil:
		log.CreatedAt = existing.CreatedAt
	case errors.Is(err, repository.ErrNotFound):
		// first save for this date
	default:
		return nil, fmt.Errorf("loading existing log: %w", err)
	}

	if err := s.logs.Upsert(ctx, log); err != nil {
		return nil, fmt.Errorf("saving log: %w", err)
	}
	return log, nil
}

// Get returns the log for a date.
func (s *Service) Get(ctx context.Context, date string) (*WorkLog, error) {
	if _, err := dateutil.Parse(date); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	log, err := s.logs.Get(ctx, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, fmt.Errorf("getting log: %w", err)
	}
	return log, nil
}

// Range returns logs between start and end inclusive, ascending by date.
func (s *Service) Range(ctx context.Context, start, end string) ([]WorkLog, error) {
	if _, err := dateutil.Parse(start); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, start)
	}
	if _, err := dateutil.Parse(end); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, end)
	}
	logs, err := s.logs.Range(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("listing logs: %w", err)
	}
	return logs, nil
}

// WeeklyRange returns the logs of the Monday-started week containing date.
func (s *Service) WeeklyRange(ctx context.Context, date string) ([]WorkLog, error) {
	d, err := dateutil.Parse(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	start, end := dateutil.WeekRange(d)
	return s.Range(ctx, dateutil.Format(start), dateutil.Format(end))
}

// MonthlyRange returns the logs of the calendar month containing date.
func (s *Service) MonthlyRange(ctx context.Context, date string) ([]WorkLog, error) {
	d, err := dateutil.Parse(date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	start, end := dateutil.MonthRange(d)
	return s.Range(ctx, dateutil.Format(start), dateutil.Format(end))
}

// Delete removes the log for a date.
func (s *Service) Delete(ctx context.Context, date string) error {
	if _, err := dateutil.Parse(date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if err := s.logs.Delete(ctx, date); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLogNotFound
		}
		return fmt.Errorf("deleting log: %w", err)
	}
	return nil
}

// Search returns logs whose content or tags match the keyword, optionally
// restricted to a date range (both bounds set, or both empty).
func (s *Service) Search(ctx context.Context, keyword, start, end string) ([]WorkLog, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, ErrEmptyKeyword
	}
	if start != "" || end != "" {
		if _, err := dateutil.Parse(start); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, start)
		}
		if _, err := dateutil.Parse(end); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, end)
		}
	}
	logs, err := s.logs.Search(ctx, keyword, start, end)
	if err != nil {
		return nil, fmt.Errorf("searching logs: %w", err)
	}
	return logs, nil
}

// Statistics aggregates store-wide counts.
func (s *Service) Statistics(ctx context.Context) (*Statistics, error) {
	dates, err := s.logs.Dates(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing dates: %w", err)
	}
	stats := &Statistics{TotalLogs: len(dates)}
	if len(dates) == 0 {
		return stats, nil
	}

	stats.FirstLogDate = dates[0]
	stats.LastLogDate = dates[len(dates)-1]

	logs, err := s.logs.Range(ctx, stats.FirstLogDate, stats.LastLogDate)
	if err != nil {
		return nil, fmt.Errorf("listing logs: %w", err)
	}
	for _, log := range logs {
		stats.TotalCharacters += utf8.RuneCountInString(log.Content)
	}
	stats.AverageCharacters = stats.TotalCharacters / len(dates)
	return stats, nil
}
