package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/ratemycode/internal/domain/history"
)

func newTestRepo(t *testing.T) *HistoryRepository {
	t.Helper()
	db, err := Connect(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewHistoryRepository(db)
}

func rec(reportID, path string, score int, depth *int, age time.Duration) *domain.Record {
	return &domain.Record{
		ReportID:      reportID,
		Timestamp:     time.Now().Add(-age),
		FilePath:      path,
		Score:         score,
		MaxDepth:      depth,
		Persona:       "PROFESSIONAL",
		SourceOfTruth: "local",
		VerdictText:   "Acceptable, but room for optimization.",
	}
}

func intPtr(v int) *int { return &v }

func TestSaveAssignsID(t *testing.T) {
	repo := newTestRepo(t)
	r := rec("r1", "/src/a.py", 60, intPtr(2), 0)

	require.NoError(t, repo.Save(context.Background(), r))
	assert.Greater(t, r.ID, int64(0))
}

func TestSaveAndGetRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	in := rec("r1", "/src/a.py", 60, intPtr(2), 0)
	require.NoError(t, repo.Save(ctx, in))

	got, err := repo.Get(ctx, in.ID)
	require.NoError(t, err)
	assert.Equal(t, "r1", got.ReportID)
	assert.Equal(t, "/src/a.py", got.FilePath)
	assert.Equal(t, 60, got.Score)
	require.NotNil(t, got.MaxDepth)
	assert.Equal(t, 2, *got.MaxDepth)
	assert.Equal(t, "local", got.SourceOfTruth)
	assert.WithinDuration(t, in.Timestamp, got.Timestamp, time.Second)
}

func TestNilDepthSurvivesRoundTrip(t *testing.T) {
	// parse-failure reports persist with no depth at all
	repo := newTestRepo(t)
	ctx := context.Background()

	in := rec("r-broken", "/src/broken.py", 0, nil, 0)
	require.NoError(t, repo.Save(ctx, in))

	got, err := repo.Get(ctx, in.ID)
	require.NoError(t, err)
	assert.Nil(t, got.MaxDepth)
	assert.Equal(t, 0, got.Score)
}

func TestGetMissingReturnsNoRows(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.Get(context.Background(), 999)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestLatestOrdersNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i, id := range []string{"r1", "r2", "r3"} {
		require.NoError(t, repo.Save(ctx, rec(id, "/src/a.py", 50+i, intPtr(1), 0)))
	}

	got, err := repo.Latest(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "r3", got[0].ReportID)
	assert.Equal(t, "r2", got[1].ReportID)
}

func TestLatestDefaultLimit(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.Save(context.Background(), rec("r1", "/src/a.py", 80, intPtr(1), 0)))

	got, err := repo.Latest(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSummary(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, rec("r1", "/src/good.py", 100, intPtr(0), time.Hour)))
	require.NoError(t, repo.Save(ctx, rec("r2", "/src/worst.py", 20, intPtr(4), time.Hour)))
	require.NoError(t, repo.Save(ctx, rec("r3", "/src/mid.py", 60, intPtr(2), time.Hour)))
	// outside the window, must not count
	require.NoError(t, repo.Save(ctx, rec("r-old", "/src/ancient.py", 0, intPtr(9), 30*24*time.Hour)))

	s, err := repo.Summary(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalReports)
	assert.InDelta(t, 60.0, s.AverageScore, 0.01)
	assert.Equal(t, "/src/worst.py", s.WorstFile)
	assert.Equal(t, 20, s.WorstScore)
}

func TestSummaryEmpty(t *testing.T) {
	repo := newTestRepo(t)
	s, err := repo.Summary(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 0, s.TotalReports)
	assert.Equal(t, "", s.WorstFile)
}

func TestPaginate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Save(ctx, rec("r", "/src/a.py", 50, intPtr(1), 0)))
	}

	page1, err := repo.Paginate(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), page1.Total)
	assert.Equal(t, 3, page1.TotalPages)
	assert.Len(t, page1.Data, 2)

	page3, err := repo.Paginate(ctx, 3, 2)
	require.NoError(t, err)
	assert.Len(t, page3.Data, 1)

	page4, err := repo.Paginate(ctx, 4, 2)
	require.NoError(t, err)
	assert.Empty(t, page4.Data)
}
