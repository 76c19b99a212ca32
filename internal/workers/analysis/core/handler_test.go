// internal/workers/analysis/core/handler_test.go
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"analysis-workers/internal/common/errors"
	"analysis-workers/internal/common/logger"
	"analysis-workers/internal/history"
	"analysis-workers/internal/knowledge"
	"analysis-workers/internal/models"
	"analysis-workers/internal/pipeline"
)

// ==========================
// Mock Job Helper
// ==========================

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)

	activatedJob := &pb.ActivatedJob{
		Key:                key,
		Type:               "analyze-skills",
		ProcessInstanceKey: key * 10,
		BpmnProcessId:      "analysis-process",
		ElementId:          "Activity_AnalyzeSkills",
		CustomHeaders:      "{}",
		Worker:             "test-worker",
		Retries:            3,
		Variables:          string(variablesJSON),
	}

	return entities.Job{ActivatedJob: activatedJob}
}

func newTestHandler(t *testing.T, store *history.Store) *Handler {
	return NewHandler("analyze-skills",
		&Config{Timeout: 30 * time.Second, MaxSnapshots: 12},
		pipeline.NewDefaultStrategy(knowledge.DomainSkills),
		Dependencies{
			History: store,
			Logger:  logger.NewTestLogger(t),
		})
}

func validVariables() map[string]interface{} {
	return map[string]interface{}{
		"tenantId": "tenant-1",
		"input": map[string]interface{}{
			"tenantId": "tenant-1",
			"skills":   []interface{}{"go", "sql"},
		},
		"strategicRequirements": []interface{}{"Data Analytics"},
	}
}

func TestHandler_ParseInput_Valid(t *testing.T) {
	handler := newTestHandler(t, nil)
	job := createMockJob(1, validVariables())

	input, err := handler.parseInput(job)

	require.NoError(t, err)
	assert.Equal(t, "tenant-1", input.TenantID)
	assert.Equal(t, []string{"Data Analytics"}, input.StrategicRequirements)
	assert.Contains(t, input.Input, "skills")
}

func TestHandler_ParseInput_SchemaViolations(t *testing.T) {
	tests := []struct {
		name      string
		variables map[string]interface{}
	}{
		{"missing tenantId", map[string]interface{}{
			"input": map[string]interface{}{},
		}},
		{"missing input", map[string]interface{}{
			"tenantId": "tenant-1",
		}},
		{"input is not an object", map[string]interface{}{
			"tenantId": "tenant-1",
			"input":    "not an object",
		}},
		{"empty tenantId", map[string]interface{}{
			"tenantId": "",
			"input":    map[string]interface{}{},
		}},
	}

	handler := newTestHandler(t, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.parseInput(createMockJob(1, tt.variables))

			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidInputShape))
		})
	}
}

func TestHandler_BuildRequest_WithHistory(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	snapshot := models.ProcessedData{
		Metadata: models.ProcessingMetadata{Completeness: 0.7},
	}
	payload, err := json.Marshal(snapshot)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT processed_data`).
		WithArgs("tenant-1", knowledge.DomainSkills, 12).
		WillReturnRows(sqlmock.NewRows([]string{"processed_data"}).AddRow(payload))
	mock.ExpectQuery(`SELECT overall_score`).
		WithArgs("tenant-1", knowledge.DomainSkills, 12).
		WillReturnRows(sqlmock.NewRows([]string{"overall_score"}).AddRow(55.0).AddRow(60.0))

	handler := newTestHandler(t, history.NewStore(db, logger.NewTestLogger(t)))
	input := &Input{TenantID: "tenant-1", Input: map[string]interface{}{}}

	req := handler.buildRequest(context.Background(), input)

	require.Len(t, req.History, 1)
	assert.Equal(t, []float64{55.0, 60.0}, req.HistoricalScores)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_BuildRequest_HistoryFailureDegrades(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT processed_data`).
		WillReturnError(fmt.Errorf("connection refused"))
	mock.ExpectQuery(`SELECT overall_score`).
		WillReturnError(fmt.Errorf("connection refused"))

	handler := newTestHandler(t, history.NewStore(db, logger.NewTestLogger(t)))
	input := &Input{TenantID: "tenant-1", Input: map[string]interface{}{"key": "value"}}

	req := handler.buildRequest(context.Background(), input)

	// The analysis still runs; trend and consistency fall back to their
	// neutral defaults.
	assert.Empty(t, req.History)
	assert.Empty(t, req.HistoricalScores)
	assert.Equal(t, "tenant-1", req.TenantID)
}

func TestHandler_BuildRequest_NoHistoryStore(t *testing.T) {
	handler := newTestHandler(t, nil)
	input := &Input{
		TenantID:              "tenant-1",
		Input:                 map[string]interface{}{"key": "value"},
		Industry:              "technology",
		StrategicRequirements: []string{"Data Analytics"},
	}

	req := handler.buildRequest(context.Background(), input)

	assert.Equal(t, "technology", req.Industry)
	assert.Equal(t, []string{"Data Analytics"}, req.StrategicRequirements)
	assert.Empty(t, req.History)
}
