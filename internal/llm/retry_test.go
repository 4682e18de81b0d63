package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func status(code int) error {
	return &ErrProviderRequest{Provider: "mock", StatusCode: code, Message: "upstream"}
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	mock := NewMockProvider(MockResponse{Text: `{"ok":true}`})
	p := WithRetry(mock, retryConfig())

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != `{"ok":true}` {
		t.Fatalf("unexpected text: %s", resp.Text)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_Classification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCalls int
	}{
		{"server error retried", status(503), 2},
		{"rate limit retried", status(429), 2},
		{"transport failure retried", status(0), 2},
		{"bad request not retried", status(400), 1},
		{"auth failure not retried", status(401), 1},
		{"unconfigured not retried", &ErrProviderUnconfigured{Provider: "openai"}, 1},
		{"cancellation not retried", context.Canceled, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(
				MockResponse{Err: tt.err},
				MockResponse{Text: `{"ok":true}`},
			)
			p := WithRetry(mock, retryConfig())

			_, _ = p.Generate(context.Background(), Request{})
			if mock.CallCount() != tt.wantCalls {
				t.Fatalf("expected %d calls, got %d", tt.wantCalls, mock.CallCount())
			}
		})
	}
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: status(502)},
		MockResponse{Err: status(502)},
		MockResponse{Err: status(502)},
	)
	p := WithRetry(mock, retryConfig())

	_, err := p.Generate(context.Background(), Request{})
	var reqErr *ErrProviderRequest
	if !errors.As(err, &reqErr) || reqErr.StatusCode != 502 {
		t.Fatalf("expected last ErrProviderRequest, got %v", err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestRetry_ContextCancellation(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: status(503)},
		MockResponse{Err: status(503)},
		MockResponse{Text: `{"ok":true}`},
	)
	p := WithRetry(mock, retryConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected no retries after cancellation, got %d calls", mock.CallCount())
	}
}

func TestRetry_RateLimitRespectsRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderRequest{Provider: "mock", StatusCode: 429, RetryAfter: time.Millisecond}},
		MockResponse{Text: `{"ok":true}`},
	)
	r := &RetryProvider{inner: mock, config: RetryConfig{
		MaxAttempts: 2,
		InitialWait: time.Hour,
		MaxWait:     time.Hour,
		Multiplier:  2,
	}}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := r.Generate(context.Background(), Request{}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("RetryAfter was not honored")
	}
}

func TestRetry_BackoffCapped(t *testing.T) {
	r := &RetryProvider{config: retryConfig()}
	for attempt := 0; attempt < 10; attempt++ {
		wait := r.backoff(attempt, status(503))
		// MaxWait plus 20% jitter.
		if wait > 12*time.Millisecond {
			t.Fatalf("attempt %d: wait %v exceeds cap", attempt, wait)
		}
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	mock := NewMockProvider()
	p := WithRetry(mock, retryConfig())
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}
