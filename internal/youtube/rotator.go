package youtube

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/rvslm/youtubemobile/internal/metrics"
	"github.com/rvslm/youtubemobile/pkg/logger"
)

// DefaultRequestTimeout bounds a single outbound call.
const DefaultRequestTimeout = 15 * time.Second

// Response is the uniform result of a rotated call. Transport-level
// failures (DNS, timeout) are synthesized into one so callers never have
// to distinguish raw errors from HTTP error statuses.
type Response struct {
	StatusCode int
	Status     string
	Body       []byte
}

// OK reports whether the call succeeded.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Rotator owns an ordered pool of API credentials and tries each one
// against a single call until one succeeds or all are exhausted. Every
// call restarts from the first credential; there is no backoff and no
// persistent disabling of bad keys.
type Rotator struct {
	keys       []string
	httpClient *http.Client
}

// NewRotator creates a Rotator over the given ordered credential pool.
func NewRotator(keys []string, timeout time.Duration) *Rotator {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Rotator{
		keys:       keys,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Do issues a GET against endpoint with the credential appended as the
// "key" parameter, once per credential in order, returning on the first
// successful status. When every credential fails the last-seen failure is
// returned. The result is never nil.
func (rt *Rotator) Do(ctx context.Context, endpoint string, params url.Values) *Response {
	endpointLabel := endpointName(endpoint)

	last := &Response{
		StatusCode: http.StatusInternalServerError,
		Status:     "no API keys configured",
	}

	for i, key := range rt.keys {
		if i > 0 {
			metrics.KeyRotations.Inc()
		}

		p := make(url.Values, len(params)+1)
		for k, v := range params {
			p[k] = v
		}
		p.Set("key", key)

		resp := rt.attempt(ctx, endpoint, p)
		if resp.OK() {
			metrics.APIRequests.WithLabelValues(endpointLabel, "success").Inc()
			return resp
		}

		outcome := "http_error"
		if resp.StatusCode == http.StatusInternalServerError && resp.Status == transportFailureStatus {
			outcome = "transport_error"
		}
		metrics.APIRequests.WithLabelValues(endpointLabel, outcome).Inc()
		logger.Log.Warn("API attempt failed, rotating credential",
			zap.String("endpoint", endpointLabel),
			zap.Int("status", resp.StatusCode),
			zap.Int("keyIndex", i),
		)
		last = resp
	}

	return last
}

const transportFailureStatus = "Request Exception"

func (rt *Rotator) attempt(ctx context.Context, endpoint string, params url.Values) *Response {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return synthesizeFailure(err)
	}

	resp, err := rt.httpClient.Do(req)
	if err != nil {
		return synthesizeFailure(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return synthesizeFailure(err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       body,
	}
}

// synthesizeFailure turns a transport-level error into a uniform failure
// descriptor, mirroring an HTTP 500 so callers handle one shape.
func synthesizeFailure(err error) *Response {
	return &Response{
		StatusCode: http.StatusInternalServerError,
		Status:     transportFailureStatus,
		Body:       []byte(err.Error()),
	}
}

func endpointName(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return endpoint
	}
	return u.Path
}
