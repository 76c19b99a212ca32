// internal/history/store_test.go
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"analysis-workers/internal/common/errors"
	"analysis-workers/internal/common/logger"
	"analysis-workers/internal/models"
	"analysis-workers/internal/pipeline"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db, logger.NewTestLogger(t)), mock
}

func sampleResult() *pipeline.Result {
	return &pipeline.Result{
		RunID:             "run-1",
		TenantID:          "tenant-1",
		Domain:            "skills",
		OverallConfidence: 0.8,
		FinalOutput: models.AnalysisResult{
			Metrics: models.AnalysisMetrics{OverallScore: 62},
		},
		ProcessedData: models.ProcessedData{
			Metadata: models.ProcessingMetadata{Completeness: 0.9},
		},
	}
}

func TestStore_SaveRun(t *testing.T) {
	store, mock := newMockStore(t)
	result := sampleResult()

	mock.ExpectExec(`INSERT INTO analysis_runs`).
		WithArgs(result.RunID, result.TenantID, result.Domain, result.OverallConfidence, 62.0, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.SaveRun(context.Background(), result)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveRun_DatabaseError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO analysis_runs`).
		WillReturnError(fmt.Errorf("connection reset"))

	err := store.SaveRun(context.Background(), sampleResult())

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeHistoryQueryFailed))
}

func TestStore_RecentSnapshots(t *testing.T) {
	store, mock := newMockStore(t)

	snapshot := models.ProcessedData{
		Metadata: models.ProcessingMetadata{Completeness: 0.7, Quality: 0.6},
	}
	payload, err := json.Marshal(snapshot)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"processed_data"}).
		AddRow(payload).
		AddRow([]byte("not json"))
	mock.ExpectQuery(`SELECT processed_data`).
		WithArgs("tenant-1", "skills", 12).
		WillReturnRows(rows)

	snapshots, err := store.RecentSnapshots(context.Background(), "tenant-1", "skills", 12)

	require.NoError(t, err)
	// The unreadable row is skipped, not fatal.
	require.Len(t, snapshots, 1)
	assert.InDelta(t, 0.7, snapshots[0].Metadata.Completeness, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_RecentScores(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"overall_score"}).
		AddRow(55.0).
		AddRow(48.5)
	mock.ExpectQuery(`SELECT overall_score`).
		WithArgs("tenant-1", "skills", 12).
		WillReturnRows(rows)

	scores, err := store.RecentScores(context.Background(), "tenant-1", "skills", 12)

	require.NoError(t, err)
	assert.Equal(t, []float64{55.0, 48.5}, scores)
}

func TestStore_RecentScores_QueryError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT overall_score`).
		WillReturnError(fmt.Errorf("relation does not exist"))

	_, err := store.RecentScores(context.Background(), "tenant-1", "skills", 12)

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeHistoryQueryFailed))
}

func TestStore_Purge(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`DELETE FROM analysis_runs`).
		WithArgs(365).
		WillReturnResult(sqlmock.NewResult(0, 7))

	removed, err := store.Purge(context.Background(), 365)

	require.NoError(t, err)
	assert.Equal(t, int64(7), removed)
}
