// internal/consensus/provider.go
package consensus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"analysis-workers/internal/common/config"
	"analysis-workers/internal/common/errors"
)

// Provider is one member of the ensemble.
type Provider interface {
	Name() string
	Weight() float64
	Generate(ctx context.Context, call ProviderCall) (ProviderResponse, error)
}

// HTTPProvider talks to one external model provider over its HTTP API.
type HTTPProvider struct {
	name        string
	baseURL     string
	apiKey      string
	model       string
	weight      float64
	timeout     time.Duration
	maxRetries  int
	temperature float64
	client      *http.Client
}

func NewHTTPProvider(cfg config.ProviderConfig) *HTTPProvider {
	return &HTTPProvider{
		name:        cfg.Name,
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		weight:      cfg.Weight,
		timeout:     time.Duration(cfg.Timeout) * time.Millisecond,
		maxRetries:  cfg.MaxRetries,
		temperature: cfg.Temperature,
		// No client-level timeout; the per-call context owns the deadline.
		client: &http.Client{},
	}
}

func (p *HTTPProvider) Name() string    { return p.name }
func (p *HTTPProvider) Weight() float64 { return p.weight }

// Generate posts the prompt and decodes a {text, confidence} payload.
// Non-OK statuses are retried with exponential backoff up to
// maxRetries; a context deadline converts to a provider timeout error.
func (p *HTTPProvider) Generate(ctx context.Context, call ProviderCall) (ProviderResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	temperature := call.Temperature
	if temperature == 0 {
		temperature = p.temperature
	}

	requestBody := map[string]interface{}{
		"model":       p.model,
		"prompt":      call.Prompt,
		"agent":       call.Agent,
		"engine":      call.Engine,
		"max_tokens":  call.MaxTokens,
		"temperature": temperature,
	}
	if call.RequireJSON {
		requestBody["response_format"] = "json"
	}

	body, _ := json.Marshal(requestBody)

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ProviderResponse{}, errors.NewProviderTimeoutError(p.name)
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/generate", bytes.NewReader(body))
		if err != nil {
			return ProviderResponse{}, errors.NewProviderCallFailedError(p.name, err)
		}
		req.Header.Set("Content-Type", "application/json")
		if p.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+p.apiKey)
		}

		resp, lastErr = p.client.Do(req)
		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}

		if ctx.Err() != nil {
			return ProviderResponse{}, errors.NewProviderTimeoutError(p.name)
		}
	}

	if lastErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return ProviderResponse{}, errors.NewProviderTimeoutError(p.name)
		}
		return ProviderResponse{}, errors.NewProviderCallFailedError(p.name, lastErr)
	}
	if resp == nil {
		return ProviderResponse{}, errors.NewProviderCallFailedError(p.name, fmt.Errorf("no successful response after %d attempts", p.maxRetries+1))
	}
	defer resp.Body.Close()

	var apiResponse struct {
		Text       string  `json:"text"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return ProviderResponse{}, errors.NewProviderCallFailedError(p.name, fmt.Errorf("decode error: %w", err))
	}

	// Sanitize before anyone downstream trusts these values.
	if strings.TrimSpace(apiResponse.Text) == "" {
		apiResponse.Text = "No answer could be produced from the available data."
		apiResponse.Confidence = 0.1
	}
	if apiResponse.Confidence < 0.0 || apiResponse.Confidence > 1.0 {
		apiResponse.Confidence = 0.5
	}

	return ProviderResponse{
		Narrative:  apiResponse.Text,
		Confidence: apiResponse.Confidence,
		Provider:   p.name,
	}, nil
}
