// internal/reasoning/risks.go
package reasoning

import (
	"fmt"
	"strings"

	"analysis-workers/internal/models"
)

// IdentifyRisks derives risks from weakness/threat insights, poor data
// quality, an excessive anomaly count, and unmet strategic requirements.
func IdentifyRisks(insights []models.Insight, data models.ProcessedData, strategicRequirements []string) []models.Risk {
	var risks []models.Risk

	for _, insight := range insights {
		if insight.Type != models.InsightWeakness && insight.Type != models.InsightThreat {
			continue
		}
		risks = append(risks, models.Risk{
			Risk:       insight.Description,
			Likelihood: confidenceLikelihood(insight.Confidence),
			Impact:     insight.Impact,
			Mitigation: mitigationFor(insight),
		})
	}

	if data.Metadata.Quality < 0.6 {
		risks = append(risks, models.Risk{
			Risk:       "Data quality issues may undermine analysis reliability",
			Likelihood: models.LevelMedium,
			Impact:     models.LevelMedium,
			Mitigation: "Improve data collection coverage and re-run the analysis on refreshed data",
		})
	}

	if len(data.Metadata.Anomalies) > 3 {
		risks = append(risks, models.Risk{
			Risk:       fmt.Sprintf("Elevated anomaly count (%d) in source data", len(data.Metadata.Anomalies)),
			Likelihood: models.LevelHigh,
			Impact:     models.LevelMedium,
			Mitigation: "Investigate and resolve flagged anomalies before acting on the results",
		})
	}

	for _, requirement := range strategicRequirements {
		if requirementEvidenced(requirement, insights) {
			continue
		}
		risks = append(risks, models.Risk{
			Risk:       fmt.Sprintf("Strategic requirement not met: %s", requirement),
			Likelihood: models.LevelMedium,
			Impact:     models.LevelHigh,
			Mitigation: fmt.Sprintf("Build a capability roadmap for %q and track it against future analyses", requirement),
		})
	}

	return risks
}

func confidenceLikelihood(confidence float64) string {
	switch {
	case confidence > 0.8:
		return models.LevelHigh
	case confidence > 0.6:
		return models.LevelMedium
	default:
		return models.LevelLow
	}
}

// mitigationFor templates the mitigation text by insight type.
func mitigationFor(insight models.Insight) string {
	area := insight.Category
	if metrics := insight.RelatedMetrics; len(metrics) > 0 {
		area = strings.Join(metrics, ", ")
	}
	if insight.Type == models.InsightThreat {
		return fmt.Sprintf("Monitor %s closely and prepare a contingency response", area)
	}
	return fmt.Sprintf("Invest in targeted improvement of %s", area)
}
