// internal/history/indexer.go
package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"analysis-workers/internal/common/errors"
	"analysis-workers/internal/common/logger"
)

// Indexer writes completed analysis results into Elasticsearch for
// search and dashboarding. Indexing failures are surfaced as typed
// errors; callers decide whether they are fatal for the job.
type Indexer struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewIndexer(client *elasticsearch.Client, index string, log logger.Logger) *Indexer {
	return &Indexer{
		client: client,
		index:  index,
		logger: log.With(map[string]interface{}{
			"component": "result-indexer",
			"index":     index,
		}),
	}
}

// document is the indexed shape: the result plus denormalized fields
// the dashboards filter on.
type document struct {
	RunID             string      `json:"runId"`
	TenantID          string      `json:"tenantId"`
	Domain            string      `json:"domain"`
	OverallConfidence float64     `json:"overallConfidence"`
	OverallScore      float64     `json:"overallScore"`
	Result            interface{} `json:"result"`
	IndexedAt         time.Time   `json:"indexedAt"`
}

// IndexResult stores one run document keyed by its run ID, so retried
// jobs overwrite instead of duplicating.
func (i *Indexer) IndexResult(ctx context.Context, runID, tenantID, domain string, overallConfidence, overallScore float64, result interface{}) error {
	doc := document{
		RunID:             runID,
		TenantID:          tenantID,
		Domain:            domain,
		OverallConfidence: overallConfidence,
		OverallScore:      overallScore,
		Result:            result,
		IndexedAt:         time.Now().UTC(),
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return errors.NewResultIndexFailedError(i.index, err)
	}

	req := esapi.IndexRequest{
		Index:      i.index,
		DocumentID: runID,
		Body:       bytes.NewReader(payload),
		Refresh:    "false",
	}

	res, err := req.Do(ctx, i.client)
	if err != nil {
		return errors.NewResultIndexFailedError(i.index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewResultIndexFailedError(i.index, fmt.Errorf("index response: %s", res.Status()))
	}

	i.logger.Debug("result indexed", map[string]interface{}{
		"runId":    runID,
		"tenantId": tenantID,
		"domain":   domain,
	})
	return nil
}
