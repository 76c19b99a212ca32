// Package knowledge holds the read-only domain knowledge registry. A
// Store is built once at process start and passed by reference into
// every analysis; it is never mutated afterwards, so any number of
// in-flight analyses may read it without synchronization.
package knowledge

import (
	"sort"

	"analysis-workers/internal/common/errors"
	"analysis-workers/internal/models"
)

// Store maps a domain key (e.g. "skills", "performance") to its
// DomainContext, plus a separate industry-context lookup table.
type Store struct {
	contexts   map[string]models.DomainContext
	industries map[string]models.IndustryContext
	generic    models.IndustryContext
}

// NewStore builds an immutable store from the given contexts. The input
// slices are copied shallowly; callers must not mutate the contained
// frameworks after construction.
func NewStore(contexts []models.DomainContext, industries map[string]models.IndustryContext, generic models.IndustryContext) *Store {
	byDomain := make(map[string]models.DomainContext, len(contexts))
	for _, dc := range contexts {
		byDomain[dc.Domain] = dc
	}

	byIndustry := make(map[string]models.IndustryContext, len(industries))
	for name, ic := range industries {
		byIndustry[name] = ic
	}

	return &Store{
		contexts:   byDomain,
		industries: byIndustry,
		generic:    generic,
	}
}

// GetContext returns the DomainContext for a domain, or an
// UNKNOWN_DOMAIN error if the key is absent.
func (s *Store) GetContext(domain string) (models.DomainContext, error) {
	dc, ok := s.contexts[domain]
	if !ok {
		return models.DomainContext{}, errors.NewUnknownDomainError(domain)
	}
	return dc, nil
}

// GetFrameworks is a projection of GetContext.
func (s *Store) GetFrameworks(domain string) ([]models.Framework, error) {
	dc, err := s.GetContext(domain)
	if err != nil {
		return nil, err
	}
	return dc.Frameworks, nil
}

// GetBestPractices is a projection of GetContext.
func (s *Store) GetBestPractices(domain string) ([]models.BestPractice, error) {
	dc, err := s.GetContext(domain)
	if err != nil {
		return nil, err
	}
	return dc.BestPractices, nil
}

// GetBenchmarks is a projection of GetContext.
func (s *Store) GetBenchmarks(domain string) ([]models.Benchmark, error) {
	dc, err := s.GetContext(domain)
	if err != nil {
		return nil, err
	}
	return dc.Benchmarks, nil
}

// GetIndustryContext returns the industry record for the given industry
// name, falling back to the generic record for unknown industries. It
// never fails.
func (s *Store) GetIndustryContext(industry string) models.IndustryContext {
	if ic, ok := s.industries[industry]; ok {
		return ic
	}
	return s.generic
}

// Domains returns the registered domain keys in sorted order.
func (s *Store) Domains() []string {
	out := make([]string, 0, len(s.contexts))
	for domain := range s.contexts {
		out = append(out, domain)
	}
	sort.Strings(out)
	return out
}
