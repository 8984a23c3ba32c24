package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snagasawa/nippo/internal/domain/summary"
	"github.com/snagasawa/nippo/internal/repository"
)

func testSummary(created time.Time) *summary.SummaryResult {
	return &summary.SummaryResult{
		ID:               uuid.NewString(),
		SummaryText:      "APIの実装を完了した。",
		KeyPoints:        []string{"API", "実装"},
		WordCount:        12,
		OriginalCount:    120,
		CompressionRatio: 0.1,
		Method:           "centrality",
		CreatedAt:        created,
	}
}

func TestSummaryCreateAndGet(t *testing.T) {
	repo := NewSummaryRepository(setupTestDB(t))
	ctx := context.Background()

	stored := testSummary(time.Now().UTC().Truncate(time.Second))
	require.NoError(t, repo.Create(ctx, stored))

	got, err := repo.Get(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.SummaryText, got.SummaryText)
	assert.Equal(t, stored.KeyPoints, got.KeyPoints)
	assert.Equal(t, stored.WordCount, got.WordCount)
	assert.Equal(t, stored.OriginalCount, got.OriginalCount)
	assert.InDelta(t, stored.CompressionRatio, got.CompressionRatio, 1e-9)
	assert.Equal(t, "centrality", got.Method)
	assert.Nil(t, got.EditedAt)
}

func TestSummaryGetNotFound(t *testing.T) {
	repo := NewSummaryRepository(setupTestDB(t))

	_, err := repo.Get(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSummaryListNewestFirst(t *testing.T) {
	repo := NewSummaryRepository(setupTestDB(t))
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	var ids []string
	for i := 0; i < 3; i++ {
		s := testSummary(base.Add(time.Duration(i) * time.Minute))
		s.SummaryText = fmt.Sprintf("要約 %d", i)
		require.NoError(t, repo.Create(ctx, s))
		ids = append(ids, s.ID)
	}

	results, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, ids[2], results[0].ID)
	assert.Equal(t, ids[0], results[2].ID)

	results, err = repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, ids[2], results[0].ID)
}

func TestSummaryUpdateText(t *testing.T) {
	repo := NewSummaryRepository(setupTestDB(t))
	ctx := context.Background()

	stored := testSummary(time.Now().UTC().Truncate(time.Second))
	require.NoError(t, repo.Create(ctx, stored))

	editedAt := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.UpdateText(ctx, stored.ID, "修正した要約", editedAt))

	got, err := repo.Get(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "修正した要約", got.SummaryText)
	require.NotNil(t, got.EditedAt)
	assert.True(t, got.EditedAt.Equal(editedAt))

	err = repo.UpdateText(ctx, uuid.NewString(), "text", editedAt)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
