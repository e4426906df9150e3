package geolib

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

type httpClient struct {
	userAgent   string
	client      *http.Client
	rateLimiter *rate.Limiter
	maxRetries  uint64
}

func (h httpClient) Do(req *http.Request) (*http.Response, error) {
	if h.client.Timeout > 0 {
		ctx, _ := context.WithTimeout(req.Context(), h.client.Timeout) // nolint: govet
		req = req.WithContext(ctx)
	}

	ctx := req.Context()

	req.Header.Set("User-Agent", h.userAgent)

	if err := h.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("cannot wait for a rate limiter: %w", err)
	}

	var resp *http.Response

	attempt := func() error {
		rv, err := h.client.Do(req) // nolint: bodyclose
		if err != nil {
			return err
		}

		if rv.StatusCode >= http.StatusInternalServerError {
			io.Copy(ioutil.Discard, rv.Body) // nolint: errcheck
			rv.Body.Close()

			return fmt.Errorf("netloc has responded with %s", rv.Status)
		}

		if rv.StatusCode >= http.StatusBadRequest {
			io.Copy(ioutil.Discard, rv.Body) // nolint: errcheck
			rv.Body.Close()

			return backoff.Permanent(fmt.Errorf("netloc has responded with %s", rv.Status))
		}

		resp = rv

		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), h.maxRetries), ctx)

	if err := backoff.Retry(attempt, policy); err != nil {
		return nil, err
	}

	return resp, nil
}

// NewHTTPClient prepares a new HTTP client for remote providers: sets a
// user agent, wraps the client with a rate limiter and retries
// transient failures (network errors and 5xx answers) with an
// exponential backoff. 4xx answers are not retried.
//
// Please see https://pkg.go.dev/golang.org/x/time/rate to get a meaning
// of rate limiter parameters.
func NewHTTPClient(client *http.Client,
	userAgent string,
	rateLimiterInterval time.Duration,
	rateLimitBurst int,
	maxRetries uint64) HTTPClient {
	return httpClient{
		userAgent:   userAgent,
		client:      client,
		rateLimiter: rate.NewLimiter(rate.Every(rateLimiterInterval), rateLimitBurst),
		maxRetries:  maxRetries,
	}
}
