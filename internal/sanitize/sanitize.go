// Package sanitize turns untrusted model text into schema-valid typed
// values. Every entry point returns a usable value: when the text cannot be
// parsed or validated, or the provider call itself fails, the call site's
// fallback factory supplies a deterministic replacement.
package sanitize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/abhisek/careerpath/internal/llm"
	"github.com/abhisek/careerpath/internal/metrics"
	"github.com/abhisek/careerpath/internal/telemetry"
)

// Result is either a parsed model value or a synthesized fallback.
type Result[T any] struct {
	Value T

	// Fallback is true when Value came from the fallback factory.
	Fallback bool

	// Err explains why the fallback was used. It is nil for real results.
	Err error
}

// ErrMalformedResponse reports model text that could not be decoded or did
// not satisfy the call site's schema.
type ErrMalformedResponse struct {
	Site  string
	Stage string // "decode", "validate" or "schema"
	Raw   string
	Err   error
}

func (e *ErrMalformedResponse) Error() string {
	return fmt.Sprintf("malformed %s response (%s): %v", e.Site, e.Stage, e.Err)
}

func (e *ErrMalformedResponse) Unwrap() error { return e.Err }

// StripFences removes a leading ``` or ```json marker and a trailing ```
// marker, then trims surrounding whitespace.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(s, "```"); ok {
		if len(rest) >= 4 && strings.EqualFold(rest[:4], "json") {
			rest = rest[4:]
		}
		s = rest
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Parse decodes raw into T. When the text is not valid JSON as a whole, the
// substring from the first '{' to the last '}' is tried once. A non-nil
// schema is enforced before decoding into T. On any failure the returned
// Result holds fallback() and Fallback is set.
func Parse[T any](raw string, schema *llm.Schema, fallback func() T) Result[T] {
	site := "response"
	if schema != nil {
		site = schema.Name
	}

	body, doc, err := decode(StripFences(raw))
	if err != nil {
		return fallbackResult(fallback, &ErrMalformedResponse{Site: site, Stage: "decode", Raw: raw, Err: err})
	}

	if schema != nil {
		compiled, err := compiledSchema(schema)
		if err != nil {
			return fallbackResult(fallback, &ErrMalformedResponse{Site: site, Stage: "schema", Raw: raw, Err: err})
		}
		if err := compiled.Validate(doc); err != nil {
			return fallbackResult(fallback, &ErrMalformedResponse{Site: site, Stage: "validate", Raw: raw, Err: err})
		}
	}

	var v T
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		return fallbackResult(fallback, &ErrMalformedResponse{Site: site, Stage: "decode", Raw: raw, Err: err})
	}
	return Result[T]{Value: v}
}

// decode returns the JSON text that parsed and its generic value.
func decode(s string) (string, any, error) {
	var doc any
	err := json.Unmarshal([]byte(s), &doc)
	if err == nil {
		return s, doc, nil
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", nil, err
	}
	inner := s[start : end+1]
	if innerErr := json.Unmarshal([]byte(inner), &doc); innerErr != nil {
		return "", nil, innerErr
	}
	return inner, doc, nil
}

func fallbackResult[T any](fallback func() T, err error) Result[T] {
	return Result[T]{Value: fallback(), Fallback: true, Err: err}
}

// Complete runs one provider round-trip and parses the reply. Provider
// errors (request failures, timeouts, missing credentials) are absorbed
// into the fallback like malformed output. Every fallback is counted per
// site.
func Complete[T any](ctx context.Context, p llm.Provider, req llm.Request, site string, fallback func() T) Result[T] {
	ctx, span := telemetry.Tracer().Start(ctx, "llm."+site, trace.WithAttributes(
		attribute.String("llm.model", p.ModelID()),
	))
	defer span.End()

	resp, err := p.Generate(llm.WithPurpose(ctx, site), req)
	if err != nil {
		r := reason(err)
		metrics.Fallbacks.WithLabelValues(site, r).Inc()
		span.SetAttributes(attribute.String("fallback.reason", r))
		span.SetStatus(codes.Error, err.Error())
		return fallbackResult(fallback, err)
	}
	span.SetAttributes(
		attribute.Int("llm.input_tokens", resp.Usage.InputTokens),
		attribute.Int("llm.output_tokens", resp.Usage.OutputTokens),
	)

	res := Parse(resp.Text, req.Schema, fallback)
	if res.Fallback {
		metrics.Fallbacks.WithLabelValues(site, "malformed").Inc()
		span.SetAttributes(attribute.String("fallback.reason", "malformed"))
	}
	return res
}

func reason(err error) string {
	var unconfigured *llm.ErrProviderUnconfigured
	if errors.As(err, &unconfigured) {
		return "unconfigured"
	}
	return "provider"
}
