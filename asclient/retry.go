// Package asclient retry logic.
//
// Purpose:
//
//	Handle transient failures (network timeouts, 5xx errors) with exponential
//	backoff. Max 3 attempts with delays of 1s, 2s, 4s by default. Requests
//	with bodies are only retried when the body can be replayed.
//
// Dependencies:
//   - context: Timeout and cancellation
//   - time: Exponential backoff delays
package asclient

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// RetryConfig holds retry configuration.
type RetryConfig struct {
	MaxAttempts  int           // Max attempts including the first (default: 3)
	InitialDelay time.Duration // Delay before the first retry (default: 1s)
	MaxDelay     time.Duration // Maximum delay between retries (default: 4s)
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     4 * time.Second,
	}
}

// doWithRetry executes an HTTP request, retrying transport timeouts and
// retriable status codes (5xx, 429) with exponential backoff. The final
// response is returned unconsumed so the caller can map its status.
func (c *Client) doWithRetry(req *http.Request, logger *zap.Logger) (*http.Response, error) {
	cfg := c.retryCfg
	if cfg.MaxAttempts <= 0 {
		cfg = DefaultRetryConfig()
	}

	// A request body can only be resent when GetBody is available.
	replayable := req.Body == nil || req.GetBody != nil

	delay := cfg.InitialDelay

	for attempt := 1; ; attempt++ {
		resp, err := c.httpClient.Do(req)

		retriable := false
		if err != nil {
			retriable = isRetriableError(err)
		} else {
			retriable = isRetriableStatus(resp.StatusCode)
		}

		last := attempt >= cfg.MaxAttempts || !replayable
		if !retriable || last {
			if err != nil {
				if attempt > 1 {
					return nil, fmt.Errorf("after %d attempts: %w", attempt, err)
				}
				return nil, err
			}
			return resp, nil
		}

		if resp != nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(delay):
			delay = minDuration(delay*2, cfg.MaxDelay)
		}

		req, err = rewindRequest(req)
		if err != nil {
			return nil, err
		}

		recordRetry()
		logger.Warn("retrying request", zap.Int("attempt", attempt+1))
	}
}

// rewindRequest clones a request with a fresh body so it can be resent.
func rewindRequest(req *http.Request) (*http.Request, error) {
	if req.Body == nil || req.GetBody == nil {
		return req, nil
	}

	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("rewind request body: %w", err)
	}

	clone := req.Clone(req.Context())
	clone.Body = body
	return clone, nil
}

// isRetriableError checks if a transport error is retriable.
func isRetriableError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

// isRetriableStatus checks if an HTTP status code is retriable. 5xx errors
// and 429 (Too Many Requests) are retriable.
func isRetriableStatus(statusCode int) bool {
	return statusCode >= 500 || statusCode == http.StatusTooManyRequests
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
