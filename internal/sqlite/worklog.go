package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/snagasawa/nippo/internal/domain/worklog"
	"github.com/snagasawa/nippo/internal/repository"
)

// WorklogRepository implements worklog.Repository for SQLite
type WorklogRepository struct {
	db *DB
}

// NewWorklogRepository creates a new WorklogRepository
func NewWorklogRepository(db *DB) *WorklogRepository {
	return &WorklogRepository{db: db}
}

// Upsert inserts or replaces the log for its date.
func (r *WorklogRepository) Upsert(ctx context.Context, log *worklog.WorkLog) error {
	tags, err := json.Marshal(log.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	query := `
		INSERT INTO work_logs (date, content, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			content = excluded.content,
			tags = excluded.tags,
			updated_at = excluded.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		log.Date,
		log.Content,
		string(tags),
		log.CreatedAt,
		log.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert work log: %w", err)
	}

	return nil
}

// Get retrieves the log for a date
func (r *WorklogRepository) Get(ctx context.Context, date string) (*worklog.WorkLog, error) {
	query := `
		SELECT date, content, tags, created_at, updated_at
		FROM work_logs
		WHERE date = ?
	`

	log, err := scanWorkLog(r.db.QueryRowContext(ctx, query, date))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get work log: %w", err)
	}

	return log, nil
}

// Range returns the logs between start and end inclusive, in date order.
func (r *WorklogRepository) Range(ctx context.Context, start, end string) ([]worklog.WorkLog, error) {
	query := `
		SELECT date, content, tags, created_at, updated_at
		FROM work_logs
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query work logs: %w", err)
	}
	defer rows.Close()

	return collectWorkLogs(rows)
}

// Delete removes the log for a date
func (r *WorklogRepository) Delete(ctx context.Context, date string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM work_logs WHERE date = ?`, date)
	if err != nil {
		return fmt.Errorf("failed to delete work log: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Dates returns every stored log date in ascending order.
func (r *WorklogRepository) Dates(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT date FROM work_logs ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("failed to scan date: %w", err)
		}
		dates = append(dates, date)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating date rows: %w", err)
	}

	return dates, nil
}

// Search finds logs whose content or tags match keyword, optionally
// bounded to a date range. FTS5 handles content matching; tags are
// matched with LIKE on the JSON column since the FTS index does not
// cover them.
func (r *WorklogRepository) Search(ctx context.Context, keyword, start, end string) ([]worklog.WorkLog, error) {
	query := `
		SELECT w.date, w.content, w.tags, w.created_at, w.updated_at
		FROM work_logs w
		WHERE (
			w.rowid IN (SELECT rowid FROM work_logs_fts WHERE work_logs_fts MATCH ?)
			OR w.tags LIKE ?
		)
	`
	args := []interface{}{ftsQuery(keyword), "%" + keyword + "%"}

	if start != "" && end != "" {
		query += " AND w.date >= ? AND w.date <= ?"
		args = append(args, start, end)
	}
	query += " ORDER BY w.date ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search work logs: %w", err)
	}
	defer rows.Close()

	return collectWorkLogs(rows)
}

// ftsQuery quotes the keyword so FTS5 treats it as a plain phrase
// rather than query syntax.
func ftsQuery(keyword string) string {
	return `"` + strings.ReplaceAll(keyword, `"`, `""`) + `"`
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWorkLog(row rowScanner) (*worklog.WorkLog, error) {
	var log worklog.WorkLog
	var tags string
	if err := row.Scan(&log.Date, &log.Content, &tags, &log.CreatedAt, &log.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tags), &log.Tags); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
	}
	return &log, nil
}

func collectWorkLogs(rows *sql.Rows) ([]worklog.WorkLog, error) {
	var logs []worklog.WorkLog
	for rows.Next() {
		log, err := scanWorkLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work log: %w", err)
		}
		logs = append(logs, *log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating work log rows: %w", err)
	}

	return logs, nil
}
