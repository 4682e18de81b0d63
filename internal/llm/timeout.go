package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// TimeoutProvider bounds each call, retries included, by a deadline.
type TimeoutProvider struct {
	inner    Provider
	provider string
	timeout  time.Duration
}

// WithTimeout wraps a Provider with a per-call deadline. A non-positive
// timeout disables the bound.
func WithTimeout(p Provider, providerName string, timeout time.Duration) Provider {
	return &TimeoutProvider{inner: p, provider: providerName, timeout: timeout}
}

func (t *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if t.timeout <= 0 {
		return t.inner.Generate(ctx, req)
	}

	callCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	resp, err := t.inner.Generate(callCtx, req)
	if err == nil {
		return resp, nil
	}

	// Our own deadline, not the caller's, expired: report it as a
	// request failure so fallbacks treat it like any other upstream error.
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		var reqErr *ErrProviderRequest
		if errors.As(err, &reqErr) && reqErr.StatusCode == 0 {
			reqErr.Message = fmt.Sprintf("timed out after %s", t.timeout)
			return nil, reqErr
		}
		return nil, &ErrProviderRequest{
			Provider: t.provider,
			Message:  fmt.Sprintf("timed out after %s", t.timeout),
			Err:      err,
		}
	}
	return nil, err
}

func (t *TimeoutProvider) ModelID() string {
	return t.inner.ModelID()
}
