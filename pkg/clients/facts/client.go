package facts

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/labshare/internal/config"
)

// Client fetches random facts from the public fact provider.
type Client interface {
	Fetch(ctx context.Context) ([]string, error)
}

// APIClient is a resty-backed implementation of Client. It never retries.
type APIClient struct {
	httpClient *resty.Client
	count      int
}

// NewClient builds a fact client using the provided configuration values.
func NewClient(cfg config.FactsConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	if cfg.Timeout > 0 {
		restyClient.SetTimeout(cfg.Timeout)
	}

	count := cfg.Count
	if count < 1 {
		count = 1
	}

	return &APIClient{
		httpClient: restyClient,
		count:      count,
	}
}

// factsResponse mirrors the provider payload, e.g. {"data":["..."]}.
type factsResponse struct {
	Data []string `json:"data"`
}

// Fetch requests the configured number of facts.
func (c *APIClient) Fetch(ctx context.Context) ([]string, error) {
	result := new(factsResponse)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("count", strconv.Itoa(c.count)).
		SetResult(result).
		Get("/")
	if err != nil {
		return nil, fmt.Errorf("fetch facts: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("fact provider error: status=%d, body=%s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	return result.Data, nil
}
