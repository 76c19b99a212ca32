// internal/consensus/caller.go
package consensus

import (
	"context"
	"sync"
	"time"

	"analysis-workers/internal/common/errors"
	"analysis-workers/internal/common/logger"
	"analysis-workers/internal/common/metrics"
	"analysis-workers/internal/models"
)

// Weighting strategies.
const (
	StrategyWeighted = "weighted"
	StrategyBest     = "best"
)

// Caller fans a call out to every provider concurrently and blocks
// until all of them answer or fail. Safe for concurrent use.
type Caller struct {
	providers     []Provider
	strategy      string
	minConfidence float64
	cache         *ResponseCache
	logger        logger.Logger
}

func NewCaller(providers []Provider, strategy string, minConfidence float64, cache *ResponseCache, log logger.Logger) *Caller {
	return &Caller{
		providers:     providers,
		strategy:      strategy,
		minConfidence: minConfidence,
		cache:         cache,
		logger: log.With(map[string]interface{}{
			"component": "consensus-caller",
		}),
	}
}

type candidate struct {
	response ProviderResponse
	weight   float64
}

// Call runs one consensus round. It fails with PROVIDER_CALL_FAILED
// when no provider answers, and with CONSENSUS_BELOW_THRESHOLD when
// the combined confidence misses the floor.
func (c *Caller) Call(ctx context.Context, call ProviderCall) (ProviderResponse, error) {
	if cached, ok := c.cache.Get(ctx, call); ok {
		metrics.ConsensusCacheHits.WithLabelValues(call.Engine).Inc()
		c.logger.Debug("consensus cache hit", map[string]interface{}{
			"agent":  call.Agent,
			"engine": call.Engine,
		})
		return cached, nil
	}

	candidates, errs := c.fanOut(ctx, call)
	if len(candidates) == 0 {
		lastErr := error(nil)
		if len(errs) > 0 {
			lastErr = errs[len(errs)-1]
		}
		return ProviderResponse{}, errors.NewProviderCallFailedError("ensemble", lastErr)
	}

	winner, combined := c.combine(candidates)
	metrics.ConsensusConfidence.WithLabelValues(call.Engine).Observe(combined)

	if combined < c.minConfidence {
		c.logger.Warn("consensus below threshold", map[string]interface{}{
			"agent":      call.Agent,
			"engine":     call.Engine,
			"confidence": combined,
			"floor":      c.minConfidence,
		})
		return ProviderResponse{}, errors.NewConsensusBelowThresholdError(combined, c.minConfidence)
	}

	result := ProviderResponse{
		Narrative:  winner.Narrative,
		Confidence: combined,
		Provider:   winner.Provider,
	}
	c.cache.Set(ctx, call, result)

	c.logger.Info("consensus reached", map[string]interface{}{
		"agent":      call.Agent,
		"engine":     call.Engine,
		"winner":     result.Provider,
		"confidence": combined,
		"answered":   len(candidates),
		"failed":     len(errs),
	})
	return result, nil
}

// fanOut queries every provider concurrently and gathers whatever
// answered. Individual provider failures are tolerated as long as at
// least one candidate remains.
func (c *Caller) fanOut(ctx context.Context, call ProviderCall) ([]candidate, []error) {
	var (
		mu         sync.Mutex
		wg         sync.WaitGroup
		candidates []candidate
		errs       []error
	)

	for _, provider := range c.providers {
		wg.Add(1)
		go func(p Provider) {
			defer wg.Done()

			start := time.Now()
			response, err := p.Generate(ctx, call)
			metrics.ProviderCallDuration.WithLabelValues(p.Name(), call.Engine).Observe(time.Since(start).Seconds())

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				metrics.ProviderCallsFailed.WithLabelValues(p.Name(), call.Engine).Inc()
				c.logger.Warn("provider call failed", map[string]interface{}{
					"provider": p.Name(),
					"engine":   call.Engine,
					"error":    err.Error(),
				})
				errs = append(errs, err)
				return
			}
			candidates = append(candidates, candidate{response: response, weight: p.Weight()})
		}(provider)
	}

	wg.Wait()
	return candidates, errs
}

// combine picks the winning candidate and the combined confidence.
// Weighted: winner maximizes weight*confidence, combined confidence is
// the weight-normalized mean. Best: winner is simply the most
// confident candidate and carries its own confidence.
func (c *Caller) combine(candidates []candidate) (ProviderResponse, float64) {
	if c.strategy == StrategyBest {
		best := candidates[0]
		for _, cand := range candidates[1:] {
			if cand.response.Confidence > best.response.Confidence {
				best = cand
			}
		}
		return best.response, models.Clamp01(best.response.Confidence)
	}

	best := candidates[0]
	bestScore := best.weight * best.response.Confidence
	totalWeight := 0.0
	weightedSum := 0.0

	for _, cand := range candidates {
		score := cand.weight * cand.response.Confidence
		if score > bestScore {
			best = cand
			bestScore = score
		}
		totalWeight += cand.weight
		weightedSum += score
	}

	if totalWeight == 0 {
		return best.response, 0
	}
	return best.response, models.Clamp01(weightedSum / totalWeight)
}
