// Package serper implements the search provider backed by the Serper
// Google Search API (https://serper.dev).
//
// Each query is sent as a POST with a JSON body {"q": query} and the
// account key in the X-API-KEY header. Only the organic hits of the
// response are used.
//
// # Rate Limiting
//
// Requests pass through a token bucket before they are sent. The bucket
// rate comes from serper.rate_per_second. A 429 response fails the call
// unless serper.max_retries is set, in which case it is retried that many
// times, honouring Retry-After when present.
//
// # Errors
//
// Non-2xx responses are returned as [*APIError]; a 429 with no retries
// left returns [*RateLimitError]. Both wrap [domain.ErrProviderFailed] so the
// orchestrator can treat every provider failure uniformly.
package serper
