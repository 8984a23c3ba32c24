package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/snagasawa/nippo/internal/domain/summary"
	"github.com/snagasawa/nippo/internal/repository"
)

// SummaryRepository implements summary.Repository for SQLite
type SummaryRepository struct {
	db *DB
}

// NewSummaryRepository creates a new SummaryRepository
func NewSummaryRepository(db *DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// Create stores one summarization run
func (r *SummaryRepository) Create(ctx context.Context, result *summary.SummaryResult) error {
	keyPoints, err := json.Marshal(result.KeyPoints)
	if err != nil {
		return fmt.Errorf("failed to marshal key points: %w", err)
	}

	query := `
		INSERT INTO summaries (
			id, summary_text, key_points, word_count, original_count,
			compression_ratio, method, created_at, edited_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		result.ID,
		result.SummaryText,
		string(keyPoints),
		result.WordCount,
		result.OriginalCount,
		result.CompressionRatio,
		result.Method,
		result.CreatedAt,
		result.EditedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create summary: %w", err)
	}

	return nil
}

// Get retrieves a summary by ID
func (r *SummaryRepository) Get(ctx context.Context, id string) (*summary.SummaryResult, error) {
	query := `
		SELECT id, summary_text, key_points, word_count, original_count,
		       compression_ratio, method, created_at, edited_at
		FROM summaries
		WHERE id = ?
	`

	result, err := scanSummary(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}

	return result, nil
}

// List returns the most recent summaries, newest first.
func (r *SummaryRepository) List(ctx context.Context, limit int) ([]summary.SummaryResult, error) {
	query := `
		SELECT id, summary_text, key_points, word_count, original_count,
		       compression_ratio, method, created_at, edited_at
		FROM summaries
		ORDER BY created_at DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list summaries: %w", err)
	}
	defer rows.Close()

	var results []summary.SummaryResult
	for rows.Next() {
		result, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		results = append(results, *result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating summary rows: %w", err)
	}

	return results, nil
}

// UpdateText replaces the summary text and records the edit time.
func (r *SummaryRepository) UpdateText(ctx context.Context, id, text string, editedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE summaries SET summary_text = ?, edited_at = ? WHERE id = ?`,
		text, editedAt, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update summary: %w", err)
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

func scanSummary(row rowScanner) (*summary.SummaryResult, error) {
	var result summary.SummaryResult
	var keyPoints string
	var editedAt sql.NullTime
	err := row.Scan(
		&result.ID,
		&result.SummaryText,
		&keyPoints,
		&result.WordCount,
		&result.OriginalCount,
		&result.CompressionRatio,
		&result.Method,
		&result.CreatedAt,
		&editedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(keyPoints), &result.KeyPoints); err != nil {
		return nil, fmt.Errorf("failed to unmarshal key points: %w", err)
	}
	if editedAt.Valid {
		t := editedAt.Time
		result.EditedAt = &t
	}
	return &result, nil
}
