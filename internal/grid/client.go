package grid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultGraphQLURL is the GRID central-data GraphQL endpoint.
	DefaultGraphQLURL = "https://api-op.grid.gg/central-data/graphql"

	apiKeyHeader = "x-api-key"

	// Conservative request throttle for the shared GRID key.
	requestsPerSecond = 5
	requestBurst      = 5
)

// Client is a rate-limited GRID GraphQL client.
type Client struct {
	// BaseURL is the GraphQL endpoint; overridable for tests.
	BaseURL string

	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a GRID client. A missing API key is a hard failure: it is
// the one upstream precondition the service cannot work around.
func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GRID_API_KEY is not set")
	}
	return &Client{
		BaseURL: DefaultGraphQLURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(requestsPerSecond, requestBurst),
	}, nil
}

// graphql posts one query and returns the decoded response document.
// GraphQL-level errors are logged but not fatal; partial data is still usable.
func (c *Client) graphql(ctx context.Context, query string, variables map[string]any) (map[string]any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	payload := map[string]any{"query": query}
	if len(variables) > 0 {
		payload["variables"] = variables
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("grid request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("grid returned status %d", resp.StatusCode)
	}

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode grid response: %w", err)
	}
	if errs, ok := out["errors"].([]any); ok && len(errs) > 0 {
		log.Printf("grid: response carried %d graphql errors", len(errs))
	}
	return out, nil
}
