package llm

import (
	"context"
	"strings"
)

// Complete sends one system/user prompt pair and returns the raw reply
// text. model is optional; when empty the provider's configured model is
// used.
func Complete(ctx context.Context, p Provider, system, user, model string) (string, error) {
	if strings.TrimSpace(system) == "" || strings.TrimSpace(user) == "" {
		return "", ErrEmptyPrompt
	}

	resp, err := p.Generate(ctx, Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: user}},
		Model:    model,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
