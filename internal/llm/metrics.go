package llm

import (
	"context"
	"time"

	"github.com/abhisek/careerpath/internal/metrics"
)

// MetricsProvider is a decorator that records call counts, latency and
// token usage in prometheus.
type MetricsProvider struct {
	inner    Provider
	provider string
}

// WithMetrics wraps a Provider with prometheus instrumentation.
func WithMetrics(p Provider, providerName string) Provider {
	return &MetricsProvider{inner: p, provider: providerName}
}

func (m *MetricsProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := m.inner.Generate(ctx, req)

	metrics.LLMLatency.WithLabelValues(m.provider, purpose).Observe(time.Since(start).Seconds())
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	metrics.LLMRequests.WithLabelValues(m.provider, purpose, outcome).Inc()
	if resp != nil {
		metrics.LLMTokens.WithLabelValues(m.provider, "input").Add(float64(resp.Usage.InputTokens))
		metrics.LLMTokens.WithLabelValues(m.provider, "output").Add(float64(resp.Usage.OutputTokens))
	}

	return resp, err
}

func (m *MetricsProvider) ModelID() string {
	return m.inner.ModelID()
}
