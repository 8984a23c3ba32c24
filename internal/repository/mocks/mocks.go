// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/snagasawa/nippo/internal/domain/summary"
	"github.com/snagasawa/nippo/internal/domain/worklog"
	"github.com/stretchr/testify/mock"
)

// WorklogRepository is a mock for worklog.Repository.
type WorklogRepository struct {
	mock.Mock
}

func (m *WorklogRepository) Upsert(ctx context.Context, log *worklog.WorkLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *WorklogRepository) Get(ctx context.Context, date string) (*worklog.WorkLog, error) {
	args := m.Called(ctx, date)
	if log, ok := args.Get(0).(*worklog.WorkLog); ok {
		return log, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *WorklogRepository) Range(ctx context.Context, start, end string) ([]worklog.WorkLog, error) {
	args := m.Called(ctx, start, end)
	if logs, ok := args.Get(0).([]worklog.WorkLog); ok {
		return logs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *WorklogRepository) Delete(ctx context.Context, date string) error {
	args := m.Called(ctx, date)
	return args.Error(0)
}

func (m *WorklogRepository) Dates(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if dates, ok := args.Get(0).([]string); ok {
		return dates, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *WorklogRepository) Search(ctx context.Context, keyword, start, end string) ([]worklog.WorkLog, error) {
	args := m.Called(ctx, keyword, start, end)
	if logs, ok := args.Get(0).([]worklog.WorkLog); ok {
		return logs, args.Error(1)
	}
	return nil, args.Error(1)
}

// SummaryRepository is a mock for summary.Repository.
type SummaryRepository struct {
	mock.Mock
}

func (m *SummaryRepository) Create(ctx context.Context, result *summary.SummaryResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *SummaryRepository) Get(ctx context.Context, id string) (*summary.SummaryResult, error) {
	args := m.Called(ctx, id)
	if res, ok := args.Get(0).(*summary.SummaryResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SummaryRepository) List(ctx context.Context, limit int) ([]summary.SummaryResult, error) {
	args := m.Called(ctx, limit)
	if res, ok := args.Get(0).([]summary.SummaryResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SummaryRepository) UpdateText(ctx context.Context, id, text string, editedAt time.Time) error {
	args := m.Called(ctx, id, text, editedAt)
	return args.Error(0)
}
