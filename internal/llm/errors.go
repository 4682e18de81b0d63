package llm

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrEmptyPrompt is returned by Complete when either prompt is blank.
var ErrEmptyPrompt = errors.New("system and user prompts must be non-empty")

// ErrProviderUnconfigured indicates the selected provider has no credential.
// It is detected at call time so a missing key never crashes the process.
type ErrProviderUnconfigured struct {
	Provider string
}

func (e *ErrProviderUnconfigured) Error() string {
	return fmt.Sprintf("LLM provider %q is not configured: missing API key", e.Provider)
}

// ErrProviderRequest indicates a non-2xx reply or a transport failure.
// StatusCode is 0 when no HTTP response was received (network error,
// timeout, empty reply).
type ErrProviderRequest struct {
	Provider   string
	StatusCode int
	Message    string
	RetryAfter time.Duration
	Err        error
}

func (e *ErrProviderRequest) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed (status %d): %s", e.Provider, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s request failed: %s", e.Provider, msg)
}

func (e *ErrProviderRequest) Unwrap() error { return e.Err }

// RateLimited reports whether the upstream returned 429.
func (e *ErrProviderRequest) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// Transient reports whether the failure is worth retrying: rate limits,
// server errors and transport failures. Other 4xx replies are permanent.
func (e *ErrProviderRequest) Transient() bool {
	return e.StatusCode == 0 || e.RateLimited() || e.StatusCode >= 500
}

func requestError(provider string, status int, err error) *ErrProviderRequest {
	re := &ErrProviderRequest{Provider: provider, StatusCode: status, Err: err}
	if err != nil {
		re.Message = err.Error()
	}
	return re
}
