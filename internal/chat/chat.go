// Package chat is a conversational mentor that answers with the learner's
// recent history and learning path in view.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/careerpath/internal/llm"
	"github.com/abhisek/careerpath/internal/logger"
	"github.com/abhisek/careerpath/internal/metrics"
	"github.com/abhisek/careerpath/internal/store"
)

const site = "chat"

// ErrAIUnavailable is returned when no language model is configured.
// Free-text chat has no synthesized fallback for that case.
var ErrAIUnavailable = errors.New("AI mentor is unavailable")

// ErrEmptyMessage is returned for a blank user message.
var ErrEmptyMessage = errors.New("message must not be empty")

var errEmptyReply = errors.New("model returned an empty reply")

// apology is sent back when the provider call fails.
const apology = "Sorry, I'm having trouble answering right now. Please try again in a moment."

const systemPrompt = `You are an empathetic AI career mentor. Explain technical topics clearly, answer doubts, suggest study material, give motivational feedback, and reference the student's learning path when it helps. Keep responses concise and structured.`

// Config holds chat settings.
type Config struct {
	// Model optionally overrides the provider's configured model.
	Model string

	// HistoryLimit caps the stored conversation log.
	HistoryLimit int

	// PromptHistory is how many recent entries are shown to the model.
	PromptHistory int

	// PlanWeeks is how many learning path units are shown to the model.
	PlanWeeks int
}

// DefaultConfig returns sensible defaults for chat.
func DefaultConfig() Config {
	return Config{
		HistoryLimit:  20,
		PromptHistory: 10,
		PlanWeeks:     2,
	}
}

// Reply is the mentor's answer and the resulting conversation.
type Reply struct {
	Reply    string                    `json:"reply"`
	History  []store.ConversationEntry `json:"history"`
	Fallback bool                      `json:"fallback"`
}

// Service answers chat messages.
type Service struct {
	provider      llm.Provider
	conversations store.ConversationRepo
	paths         store.LearningPathRepo
	cfg           Config
	log           *logger.Logger
	now           func() time.Time
}

// NewService creates a chat service.
func NewService(provider llm.Provider, conversations store.ConversationRepo, paths store.LearningPathRepo,
	cfg Config, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	def := DefaultConfig()
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = def.HistoryLimit
	}
	if cfg.PromptHistory <= 0 {
		cfg.PromptHistory = def.PromptHistory
	}
	if cfg.PlanWeeks <= 0 {
		cfg.PlanWeeks = def.PlanWeeks
	}
	return &Service{
		provider:      provider,
		conversations: conversations,
		paths:         paths,
		cfg:           cfg,
		log:           log.With("service", "chat"),
		now:           time.Now,
	}
}

// Chat sends message to the mentor. On success the message and the reply
// are appended to the user's log. When the provider request fails, a
// canned apology is returned with Fallback set and the log is unchanged.
func (s *Service) Chat(ctx context.Context, userID, message string) (*Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	history, err := s.conversations.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	path, err := s.paths.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load learning path: %w", err)
	}

	prompt := s.buildUserMessage(history.Entries, path, message)
	text, err := llm.Complete(llm.WithPurpose(ctx, site), s.provider, systemPrompt, prompt, s.cfg.Model)
	if err == nil && strings.TrimSpace(text) == "" {
		err = errEmptyReply
	}
	if err != nil {
		var unconfigured *llm.ErrProviderUnconfigured
		var reqErr *llm.ErrProviderRequest
		switch {
		case errors.As(err, &unconfigured):
			return nil, fmt.Errorf("%w: %w", ErrAIUnavailable, err)
		case errors.As(err, &reqErr), errors.Is(err, errEmptyReply):
			metrics.Fallbacks.WithLabelValues(site, "provider").Inc()
			s.log.Warn("chat fallback", "user", userID, "error", err)
			return &Reply{Reply: apology, History: history.Entries, Fallback: true}, nil
		default:
			return nil, fmt.Errorf("chat: %w", err)
		}
	}

	at := s.now().UTC()
	updated, err := s.conversations.Append(ctx, userID, s.cfg.HistoryLimit,
		store.ConversationEntry{Role: store.ChatRoleUser, Content: message, Timestamp: at},
		store.ConversationEntry{Role: store.ChatRoleAssistant, Content: strings.TrimSpace(text), Timestamp: at},
	)
	if err != nil {
		return nil, fmt.Errorf("save conversation: %w", err)
	}

	s.log.Debug("chat reply", "user", userID, "history", len(updated.Entries))
	return &Reply{Reply: strings.TrimSpace(text), History: updated.Entries}, nil
}

// History returns the user's stored conversation.
func (s *Service) History(ctx context.Context, userID string) ([]store.ConversationEntry, error) {
	conv, err := s.conversations.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	return conv.Entries, nil
}

func (s *Service) buildUserMessage(entries []store.ConversationEntry, path *store.LearningPath, message string) string {
	var b strings.Builder

	b.WriteString("Conversation history:\n")
	if n := len(entries); n > s.cfg.PromptHistory {
		entries = entries[n-s.cfg.PromptHistory:]
	}
	for _, e := range entries {
		speaker := "Mentor"
		if e.Role == store.ChatRoleUser {
			speaker = "Student"
		}
		b.WriteString(fmt.Sprintf("%s: %s\n", speaker, e.Content))
	}

	b.WriteString(fmt.Sprintf("\nStudent latest message: %q\n", message))

	var weeks []store.WeeklyUnit
	if path != nil {
		weeks = path.Weeks
		if len(weeks) > s.cfg.PlanWeeks {
			weeks = weeks[:s.cfg.PlanWeeks]
		}
	}
	summary, err := json.MarshalIndent(weeks, "", "  ")
	if err != nil || weeks == nil {
		summary = []byte("[]")
	}
	b.WriteString("\nCurrent learning path (summary):\n")
	b.Write(summary)
	return b.String()
}
