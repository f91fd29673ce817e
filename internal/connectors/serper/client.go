package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
	"github.com/dawsonl1/halda-serper/internal/core/ports/driven"
	"github.com/dawsonl1/halda-serper/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.SearchProvider = (*Client)(nil)

const (
	// RetryDelay is the initial delay between retries.
	RetryDelay = time.Second

	// maxErrorBody bounds how much of an error response is kept.
	maxErrorBody = 512
)

// Client calls the Serper search endpoint.
type Client struct {
	apiKey      string
	endpoint    string
	httpClient  *http.Client
	rateLimiter *RateLimiter
	maxRetries  int
	retryDelay  time.Duration
}

// NewClient creates a Serper client from provider settings.
// Returns ErrMissingAPIKey when no key is configured.
func NewClient(settings domain.SerperSettings) (*Client, error) {
	if !settings.IsConfigured() {
		return nil, ErrMissingAPIKey
	}
	endpoint := settings.Endpoint
	if endpoint == "" {
		endpoint = domain.DefaultSerperEndpoint
	}
	timeout := settings.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultSerperTimeout
	}
	return &Client{
		apiKey:      settings.APIKey,
		endpoint:    endpoint,
		httpClient:  &http.Client{Timeout: timeout},
		rateLimiter: NewRateLimiter(settings.RatePerSecond),
		maxRetries:  max(settings.MaxRetries, 0),
		retryDelay:  RetryDelay,
	}, nil
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "serper"
}

type searchRequest struct {
	Q string `json:"q"`
}

type searchResponse struct {
	Organic []organicItem `json:"organic"`
}

type organicItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Search sends query to Serper and returns the organic hits in rank order.
func (c *Client) Search(ctx context.Context, query string) ([]driven.OrganicResult, error) {
	body, err := json.Marshal(searchRequest{Q: query})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	for attempt := 0; ; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := c.do(ctx, body)
		if err != nil {
			return nil, fmt.Errorf("serper: %w: %w", domain.ErrProviderFailed, err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			delay := retryDelay(resp, attempt, c.retryDelay)
			drain(resp)
			if attempt >= c.maxRetries {
				return nil, &RateLimitError{RetryAfter: delay, Attempts: attempt + 1}
			}
			logger.Warn("Serper rate limited, retrying in %s", delay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			continue
		}

		return decode(resp)
	}
}

func (c *Client) do(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	return c.httpClient.Do(req)
}

func decode(resp *http.Response) ([]driven.OrganicResult, error) {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(msg))}
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("serper: %w: decode response: %w", domain.ErrProviderFailed, err)
	}

	hits := make([]driven.OrganicResult, len(parsed.Organic))
	for i, item := range parsed.Organic {
		hits[i] = driven.OrganicResult(item)
	}
	return hits, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
