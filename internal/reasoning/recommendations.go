// internal/reasoning/recommendations.go
package reasoning

import (
	"fmt"
	"sort"
	"strings"

	"analysis-workers/internal/models"
)

var priorityRank = map[string]int{
	models.PriorityCritical: 0,
	models.PriorityHigh:     1,
	models.PriorityMedium:   2,
	models.PriorityLow:      3,
}

// GenerateRecommendations builds one recommendation per gap/weakness
// insight, adds applicable best practices from the domain context and
// unmet strategic requirements, then sorts by priority and deduplicates
// by exact action text.
func GenerateRecommendations(insights []models.Insight, ctx models.DomainContext, strategicRequirements []string) []models.Recommendation {
	var recommendations []models.Recommendation

	for _, insight := range insights {
		if insight.Type != models.InsightGap && insight.Type != models.InsightWeakness {
			continue
		}
		priority := impactPriority(insight.Impact)
		recommendations = append(recommendations, models.Recommendation{
			Priority:       priority,
			Category:       insight.Category,
			Action:         fmt.Sprintf("Address: %s", insight.Description),
			Rationale:      fmt.Sprintf("Identified as a %s with %s impact", insight.Type, insight.Impact),
			ExpectedImpact: insight.Impact,
			Timeframe:      priorityTimeframe(priority),
		})
	}

	for _, bp := range ctx.BestPractices {
		if bp.Priority != models.PriorityCritical && bp.Priority != models.PriorityHigh {
			continue
		}
		if bp.Priority != models.PriorityCritical && !practiceMatchesInsight(bp, insights) {
			continue
		}
		recommendations = append(recommendations, models.Recommendation{
			Priority:       bp.Priority,
			Category:       "best-practice",
			Action:         bp.Implementation,
			Rationale:      bp.Rationale,
			ExpectedImpact: models.LevelMedium,
			Timeframe:      priorityTimeframe(bp.Priority),
		})
	}

	for _, requirement := range strategicRequirements {
		if requirementEvidenced(requirement, insights) {
			continue
		}
		recommendations = append(recommendations, models.Recommendation{
			Priority:       models.PriorityHigh,
			Category:       "strategic",
			Action:         fmt.Sprintf("Develop capability: %s", requirement),
			Rationale:      fmt.Sprintf("Strategic requirement %q has no supporting strength in the current data", requirement),
			ExpectedImpact: models.LevelHigh,
			Timeframe:      models.TimeframeMediumTerm,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return priorityRank[recommendations[i].Priority] < priorityRank[recommendations[j].Priority]
	})

	return dedupeByAction(recommendations)
}

func impactPriority(impact string) string {
	switch impact {
	case models.LevelHigh:
		return models.PriorityCritical
	case models.LevelMedium:
		return models.PriorityHigh
	default:
		return models.PriorityMedium
	}
}

func priorityTimeframe(priority string) string {
	switch priority {
	case models.PriorityCritical:
		return models.TimeframeImmediate
	case models.PriorityHigh:
		return models.TimeframeShortTerm
	case models.PriorityMedium:
		return models.TimeframeMediumTerm
	default:
		return models.TimeframeLongTerm
	}
}

// practiceMatchesInsight reports whether any gap/weakness insight
// mentions the first word of the practice name.
func practiceMatchesInsight(bp models.BestPractice, insights []models.Insight) bool {
	words := strings.Fields(bp.Practice)
	if len(words) == 0 {
		return false
	}
	firstWord := strings.ToLower(words[0])

	for _, insight := range insights {
		if insight.Type != models.InsightGap && insight.Type != models.InsightWeakness {
			continue
		}
		if strings.Contains(strings.ToLower(insight.Description), firstWord) {
			return true
		}
	}
	return false
}

// requirementEvidenced reports whether a strength insight already
// mentions the requirement.
func requirementEvidenced(requirement string, insights []models.Insight) bool {
	lowered := strings.ToLower(requirement)
	for _, insight := range insights {
		if insight.Type != models.InsightStrength {
			continue
		}
		if strings.Contains(strings.ToLower(insight.Description), lowered) {
			return true
		}
	}
	return false
}

// dedupeByAction keeps the first (highest-priority after sorting)
// recommendation for each exact action text. Returns a fresh slice so
// the input is never aliased.
func dedupeByAction(recommendations []models.Recommendation) []models.Recommendation {
	seen := make(map[string]bool, len(recommendations))
	deduped := make([]models.Recommendation, 0, len(recommendations))
	for _, rec := range recommendations {
		if seen[rec.Action] {
			continue
		}
		seen[rec.Action] = true
		deduped = append(deduped, rec)
	}
	return deduped
}
