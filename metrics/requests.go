package metrics

import (
	"context"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/metric"
)

// RequestsTotal is the name of the request counter.
const RequestsTotal = "demo.requests.total"

// RequestMetrics maintains the request counter. Safe for concurrent use.
type RequestMetrics struct {
	requests metric.Int64Counter
}

// NewRequestMetrics registers the request counter on meter, starting at zero.
func NewRequestMetrics(meter metric.Meter) (*RequestMetrics, error) {
	requests, err := meter.Int64Counter(
		RequestsTotal,
		metric.WithDescription("Total number of requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register %s: %w", RequestsTotal, err)
	}

	// make the counter visible to exporters before the first increment
	requests.Add(context.Background(), 0)

	return &RequestMetrics{requests: requests}, nil
}

// IncrementRequests adds one to the request counter.
func (m *RequestMetrics) IncrementRequests(ctx context.Context) {
	m.requests.Add(ctx, 1)
}

// Middleware counts every request passing through it.
// Not mounted unless METRICS_COUNT_REQUESTS is set.
func (m *RequestMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.IncrementRequests(r.Context())
		next.ServeHTTP(w, r)
	})
}
