// internal/history/store.go

// Package history persists completed analysis runs. Postgres keeps the
// per-tenant run history that feeds trend and consistency scoring;
// Elasticsearch holds the full results for search and dashboards.
package history

import (
	"context"
	"database/sql"
	"encoding/json"

	"analysis-workers/internal/common/errors"
	"analysis-workers/internal/common/logger"
	"analysis-workers/internal/models"
	"analysis-workers/internal/pipeline"
)

// Store reads and writes analysis runs in Postgres.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func NewStore(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db: db,
		logger: log.With(map[string]interface{}{
			"component": "history-store",
		}),
	}
}

const insertRunQuery = `
INSERT INTO analysis_runs (run_id, tenant_id, domain, overall_confidence, overall_score, processed_data, result, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())`

// SaveRun records one completed run. The processed snapshot and the
// final result are stored as JSONB so later runs can replay them.
func (s *Store) SaveRun(ctx context.Context, result *pipeline.Result) error {
	processedPayload, err := json.Marshal(result.ProcessedData)
	if err != nil {
		return errors.NewHistoryQueryFailedError(err)
	}
	resultPayload, err := json.Marshal(result.FinalOutput)
	if err != nil {
		return errors.NewHistoryQueryFailedError(err)
	}

	_, err = s.db.ExecContext(ctx, insertRunQuery,
		result.RunID,
		result.TenantID,
		result.Domain,
		result.OverallConfidence,
		result.FinalOutput.Metrics.OverallScore,
		processedPayload,
		resultPayload,
	)
	if err != nil {
		return errors.NewHistoryQueryFailedError(err)
	}

	s.logger.Debug("run saved", map[string]interface{}{
		"runId":    result.RunID,
		"tenantId": result.TenantID,
		"domain":   result.Domain,
	})
	return nil
}

const recentSnapshotsQuery = `
SELECT processed_data
FROM analysis_runs
WHERE tenant_id = $1 AND domain = $2
ORDER BY created_at DESC
LIMIT $3`

// RecentSnapshots loads prior processed-data snapshots for a
// tenant+domain, newest first. Snapshots that no longer unmarshal are
// skipped rather than failing the whole query.
func (s *Store) RecentSnapshots(ctx context.Context, tenantID, domain string, limit int) ([]models.ProcessedData, error) {
	rows, err := s.db.QueryContext(ctx, recentSnapshotsQuery, tenantID, domain, limit)
	if err != nil {
		return nil, errors.NewHistoryQueryFailedError(err)
	}
	defer rows.Close()

	var snapshots []models.ProcessedData
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, errors.NewHistoryQueryFailedError(err)
		}

		var snapshot models.ProcessedData
		if err := json.Unmarshal(payload, &snapshot); err != nil {
			s.logger.Warn("skipping unreadable snapshot", map[string]interface{}{
				"tenantId": tenantID,
				"domain":   domain,
				"error":    err.Error(),
			})
			continue
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewHistoryQueryFailedError(err)
	}

	return snapshots, nil
}

const recentScoresQuery = `
SELECT overall_score
FROM analysis_runs
WHERE tenant_id = $1 AND domain = $2
ORDER BY created_at DESC
LIMIT $3`

// RecentScores loads prior overall scores for a tenant+domain, newest
// first.
func (s *Store) RecentScores(ctx context.Context, tenantID, domain string, limit int) ([]float64, error) {
	rows, err := s.db.QueryContext(ctx, recentScoresQuery, tenantID, domain, limit)
	if err != nil {
		return nil, errors.NewHistoryQueryFailedError(err)
	}
	defer rows.Close()

	var scores []float64
	for rows.Next() {
		var score float64
		if err := rows.Scan(&score); err != nil {
			return nil, errors.NewHistoryQueryFailedError(err)
		}
		scores = append(scores, score)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewHistoryQueryFailedError(err)
	}

	return scores, nil
}

const purgeQuery = `
DELETE FROM analysis_runs
WHERE created_at < NOW() - ($1 || ' days')::interval`

// Purge deletes runs older than the retention window and returns the
// number of rows removed.
func (s *Store) Purge(ctx context.Context, retentionDays int) (int64, error) {
	result, err := s.db.ExecContext(ctx, purgeQuery, retentionDays)
	if err != nil {
		return 0, errors.NewHistoryQueryFailedError(err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewHistoryQueryFailedError(err)
	}
	if removed > 0 {
		s.logger.Info("purged expired runs", map[string]interface{}{
			"removed":       removed,
			"retentionDays": retentionDays,
		})
	}
	return removed, nil
}
