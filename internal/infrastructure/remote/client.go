// Package remote wraps the two public read-only APIs the tracker consumes. Each
// client is a resty client bound to a base URL behind its own circuit breaker.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/fastygo/careconnect/internal/config"
	"github.com/fastygo/careconnect/internal/metrics"
)

// StatusError is returned for a non-2xx response.
type StatusError struct {
	Endpoint string
	Status   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.Status)
}

type endpoint struct {
	name    string
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

func newEndpoint(name, baseURL string, timeout time.Duration, bc config.BreakerConfig, logger *zap.Logger) *endpoint {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	logger = logger.With(zap.String("endpoint", name))

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	threshold := bc.FailureThreshold
	if threshold == 0 {
		threshold = 3
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: bc.MaxRequests,
		Interval:    bc.Interval,
		Timeout:     bc.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		// A caller giving up is not a signal about the remote side.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &endpoint{name: name, http: client, breaker: breaker, logger: logger}
}

// get issues a GET through the breaker and returns the body of a 2xx response.
func (e *endpoint) get(ctx context.Context, path string, query map[string]string) ([]byte, error) {
	body, err := e.breaker.Execute(func() (interface{}, error) {
		resp, err := e.http.R().
			SetContext(ctx).
			SetQueryParams(query).
			Get(path)
		if err != nil {
			return nil, fmt.Errorf("%s request: %w", e.name, err)
		}
		if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
			return nil, &StatusError{Endpoint: e.name, Status: resp.StatusCode()}
		}
		return resp.Body(), nil
	})

	result := "ok"
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		result = "rejected"
	case err != nil:
		result = "error"
	}
	metrics.RemoteFetchesTotal.WithLabelValues(e.name, result).Inc()

	if err != nil {
		e.logger.Debug("remote fetch failed", zap.Error(err))
		return nil, err
	}
	return body.([]byte), nil
}

// State reports the breaker state for health output.
func (e *endpoint) State() gobreaker.State {
	return e.breaker.State()
}
