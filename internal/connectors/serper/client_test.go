package serper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dawsonl1/halda-serper/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	return newTestClientWithRetries(t, 0, handler)
}

func newTestClientWithRetries(t *testing.T, retries int, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient(domain.SerperSettings{
		APIKey:     "test-key",
		Endpoint:   server.URL,
		Timeout:    5 * time.Second,
		MaxRetries: retries,
	})
	require.NoError(t, err)
	c.retryDelay = time.Millisecond
	return c
}

func TestNewClient_MissingKey(t *testing.T) {
	_, err := NewClient(domain.SerperSettings{})

	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.ErrorIs(t, err, domain.ErrProviderNotConfigured)
}

func TestNewClient_Defaults(t *testing.T) {
	c, err := NewClient(domain.SerperSettings{APIKey: "k"})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSerperEndpoint, c.endpoint)
	assert.Equal(t, domain.DefaultSerperTimeout, c.httpClient.Timeout)
	assert.Equal(t, "serper", c.Name())
	assert.Zero(t, c.maxRetries)
}

func TestClient_Search_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Acme U tuition", body["q"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"searchParameters": {"q": "Acme U tuition"},
			"organic": [
				{"title": "Tuition", "link": "https://www.acme.edu/tuition", "snippet": "Costs", "position": 1},
				{"title": "Rates", "link": "https://bursar.acme.edu/rates", "snippet": "Rates", "position": 2}
			]
		}`))
	})

	hits, err := c.Search(context.Background(), "Acme U tuition")

	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "https://www.acme.edu/tuition", hits[0].Link)
	assert.Equal(t, "Tuition", hits[0].Title)
	assert.Equal(t, "Costs", hits[0].Snippet)
}

func TestClient_Search_NoOrganic(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"answerBox": {}}`))
	})

	hits, err := c.Search(context.Background(), "q")

	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestClient_Search_APIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Unauthorized.", http.StatusUnauthorized)
	})

	_, err := c.Search(context.Background(), "q")

	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.ErrorIs(t, err, domain.ErrProviderFailed)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Unauthorized.", apiErr.Message)
}

func TestClient_Search_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	_, err := c.Search(context.Background(), "q")

	assert.ErrorIs(t, err, domain.ErrProviderFailed)
}

func TestClient_Search_NoRetryByDefault(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Search(context.Background(), "q")

	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
	assert.ErrorIs(t, err, domain.ErrProviderFailed)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Search_RetriesOn429(t *testing.T) {
	var calls atomic.Int32
	c := newTestClientWithRetries(t, 2, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"organic": [{"title": "t", "link": "https://acme.edu", "snippet": "s"}]}`))
	})

	hits, err := c.Search(context.Background(), "q")

	require.NoError(t, err)
	assert.Len(t, hits, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_Search_RateLimitExhausted(t *testing.T) {
	var calls atomic.Int32
	c := newTestClientWithRetries(t, 2, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set(HeaderRetryAfter, "0")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Search(context.Background(), "q")

	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.ErrorIs(t, err, domain.ErrProviderFailed)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Search_ContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Search(ctx, "q")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetryDelay(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}
	assert.Equal(t, time.Second, retryDelay(resp, 0, time.Second))
	assert.Equal(t, 4*time.Second, retryDelay(resp, 2, time.Second))

	resp.Header.Set(HeaderRetryAfter, "3")
	assert.Equal(t, 3*time.Second, retryDelay(resp, 0, time.Second))

	resp.Header.Set(HeaderRetryAfter, "600")
	assert.Equal(t, MaxRetryAfter, retryDelay(resp, 0, time.Second))
}

func TestRateLimiter_Throttles(t *testing.T) {
	limiter := NewRateLimiter(20)
	ctx := context.Background()

	start := time.Now()
	for range 3 {
		require.NoError(t, limiter.Wait(ctx))
	}

	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestRateLimiter_Unlimited(t *testing.T) {
	limiter := NewRateLimiter(0)
	for range 100 {
		require.NoError(t, limiter.Wait(context.Background()))
	}
}
