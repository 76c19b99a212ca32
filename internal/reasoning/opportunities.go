// internal/reasoning/opportunities.go
package reasoning

import (
	"fmt"
	"strings"

	"analysis-workers/internal/models"
)

// IdentifyOpportunities derives opportunities from strength and trend
// insights, industry opportunities from the domain context, and quick
// wins from medium-impact gaps.
func IdentifyOpportunities(insights []models.Insight, ctx models.DomainContext) []models.Opportunity {
	var opportunities []models.Opportunity

	for _, insight := range insights {
		switch insight.Type {
		case models.InsightStrength:
			opportunities = append(opportunities, models.Opportunity{
				Opportunity: fmt.Sprintf("Leverage strength: %s", insight.Description),
				Potential:   models.LevelHigh,
				Effort:      models.LevelLow,
				TimeToValue: "1-3 months",
			})
		case models.InsightTrend:
			opportunities = append(opportunities, models.Opportunity{
				Opportunity: fmt.Sprintf("Capitalize on trend: %s", insight.Description),
				Potential:   models.LevelMedium,
				Effort:      models.LevelMedium,
				TimeToValue: "3-6 months",
			})
		}
	}

	// Industry opportunities only apply once the data shows at least
	// one well-supported strength.
	if hasConfidentStrength(insights) {
		for _, industryOpp := range ctx.IndustryContext.Opportunities {
			if opportunityEchoed(industryOpp, insights) {
				continue
			}
			opportunities = append(opportunities, models.Opportunity{
				Opportunity: industryOpp,
				Potential:   models.LevelMedium,
				Effort:      models.LevelMedium,
				TimeToValue: "6-12 months",
			})
		}
	}

	for _, insight := range insights {
		if insight.Type != models.InsightGap || insight.Impact != models.LevelMedium {
			continue
		}
		opportunities = append(opportunities, models.Opportunity{
			Opportunity: fmt.Sprintf("Quick win: %s", insight.Description),
			Potential:   models.LevelMedium,
			Effort:      models.LevelLow,
			TimeToValue: "1 month",
		})
	}

	return opportunities
}

func hasConfidentStrength(insights []models.Insight) bool {
	for _, insight := range insights {
		if insight.Type == models.InsightStrength && insight.Confidence > 0.7 {
			return true
		}
	}
	return false
}

func opportunityEchoed(industryOpp string, insights []models.Insight) bool {
	lowered := strings.ToLower(industryOpp)
	for _, insight := range insights {
		if strings.Contains(strings.ToLower(insight.Description), lowered) {
			return true
		}
	}
	return false
}
