// internal/processing/structure.go
package processing

import (
	"sort"

	"analysis-workers/internal/models"
)

// Structure derives dimensions, metrics, categories, relationships, and
// patterns from the cleaned input and the domain context.
func Structure(cleaned map[string]interface{}, ctx models.DomainContext, completeness float64) models.StructuredData {
	return models.StructuredData{
		Dimensions:    deriveDimensions(cleaned, ctx),
		Metrics:       deriveMetrics(cleaned, completeness),
		Categories:    deriveCategories(cleaned, ctx),
		Relationships: deriveRelationships(cleaned),
		Patterns:      detectPatterns(cleaned, completeness),
	}
}

// deriveDimensions is the deduplicated union of every framework's
// components and every top-level key holding a non-array object.
func deriveDimensions(cleaned map[string]interface{}, ctx models.DomainContext) []string {
	seen := make(map[string]bool)
	var dimensions []string

	add := func(d string) {
		if !seen[d] {
			seen[d] = true
			dimensions = append(dimensions, d)
		}
	}

	for _, fw := range ctx.Frameworks {
		for _, component := range fw.Components {
			add(component)
		}
	}

	for _, key := range sortedKeys(cleaned) {
		if _, isObject := cleaned[key].(map[string]interface{}); isObject {
			add(key)
		}
	}

	return dimensions
}

func deriveMetrics(cleaned map[string]interface{}, completeness float64) map[string]float64 {
	metrics := map[string]float64{
		"totalRecords": float64(RecordCount(cleaned)),
		"completeness": completeness,
		"complexity":   Complexity(cleaned),
	}

	// Ad hoc domain metrics keyed by well-known field presence.
	if responses, ok := cleaned["surveyResponses"].([]interface{}); ok {
		metrics["responseRate"] = float64(len(responses)) / 100
	}
	if count, ok := toFloat(cleaned["employeeCount"]); ok {
		metrics["organizationSize"] = count
	}
	if skills, ok := cleaned["skills"].([]interface{}); ok {
		metrics["skillsCoverage"] = float64(len(skills)) / 50
	}

	return metrics
}

func deriveCategories(cleaned map[string]interface{}, ctx models.DomainContext) map[string][]string {
	categories := make(map[string][]string)

	for _, fw := range ctx.Frameworks {
		categories["frameworks"] = append(categories["frameworks"], fw.Name)
	}
	for _, bp := range ctx.BestPractices {
		categories["bestPractices"] = append(categories["bestPractices"], bp.Practice)
	}

	// Top-level keys grouped by cleaned value type.
	for _, key := range sortedKeys(cleaned) {
		switch cleaned[key].(type) {
		case []interface{}:
			categories["collections"] = append(categories["collections"], key)
		case map[string]interface{}:
			categories["nested"] = append(categories["nested"], key)
		case string:
			categories["qualitative"] = append(categories["qualitative"], key)
		default:
			if _, ok := toFloat(cleaned[key]); ok {
				categories["quantitative"] = append(categories["quantitative"], key)
			}
		}
	}

	return categories
}

func deriveRelationships(cleaned map[string]interface{}) []models.Relationship {
	var relationships []models.Relationship

	// Hierarchical edges from a reporting structure, manager -> reports.
	if reporting, ok := cleaned["reportingStructure"].(map[string]interface{}); ok {
		for _, manager := range sortedKeys(reporting) {
			reports, ok := reporting[manager].([]interface{})
			if !ok {
				continue
			}
			for _, report := range reports {
				name, ok := report.(string)
				if !ok {
					continue
				}
				relationships = append(relationships, models.Relationship{
					From:     manager,
					To:       name,
					Strength: 1.0,
					Type:     "hierarchical",
				})
			}
		}
	}

	// Pairwise correlation edges for every unordered skill pair. O(n^2)
	// over the skill list; acceptable at observed list sizes.
	if skills, ok := cleaned["skills"].([]interface{}); ok {
		for i := 0; i < len(skills); i++ {
			for j := i + 1; j < len(skills); j++ {
				from, okFrom := skills[i].(string)
				to, okTo := skills[j].(string)
				if !okFrom || !okTo {
					continue
				}
				relationships = append(relationships, models.Relationship{
					From:     from,
					To:       to,
					Strength: 0.5,
					Type:     "skill_correlation",
				})
			}
		}
	}

	return relationships
}

func detectPatterns(cleaned map[string]interface{}, completeness float64) []models.Pattern {
	patterns := []models.Pattern{
		{
			Pattern:      "data_completeness",
			Frequency:    completeness,
			Significance: completenessSignificance(completeness),
		},
	}

	if levels, ok := toFloat(cleaned["hierarchyLevels"]); ok {
		name := "flat_structure"
		if levels > 5 {
			name = "deep_hierarchy"
		}
		patterns = append(patterns, models.Pattern{
			Pattern:      name,
			Frequency:    1.0,
			Significance: 0.8,
		})
	}

	if skills, ok := cleaned["skills"].([]interface{}); ok {
		name := "focused_skills"
		if len(skills) > 20 {
			name = "diverse_skills"
		}
		patterns = append(patterns, models.Pattern{
			Pattern:      name,
			Frequency:    1.0,
			Significance: 0.7,
		})
	}

	return patterns
}

func completenessSignificance(completeness float64) float64 {
	if completeness > 0.8 {
		return 0.9
	}
	return 0.5
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
