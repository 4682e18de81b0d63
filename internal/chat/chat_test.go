package chat

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerpath/internal/llm"
	"github.com/abhisek/careerpath/internal/store"
)

func newService(t *testing.T, p llm.Provider) (*Service, *store.Store) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewService(p, s.ConversationRepo(), s.LearningPathRepo(), DefaultConfig(), nil), s
}

func TestChat_AppendsExchange(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "  Start with goroutines.  "})
	svc, _ := newService(t, mock)

	reply, err := svc.Chat(t.Context(), "u1", "How do I learn concurrency?")
	require.NoError(t, err)

	assert.False(t, reply.Fallback)
	assert.Equal(t, "Start with goroutines.", reply.Reply)
	require.Len(t, reply.History, 2)
	assert.Equal(t, store.ChatRoleUser, reply.History[0].Role)
	assert.Equal(t, "How do I learn concurrency?", reply.History[0].Content)
	assert.Equal(t, store.ChatRoleAssistant, reply.History[1].Role)

	history, err := svc.History(t.Context(), "u1")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestChat_LogCappedAtTwenty(t *testing.T) {
	mock := llm.NewMockProvider()
	for i := 0; i < 15; i++ {
		mock.AddResponse(llm.MockResponse{Text: fmt.Sprintf("a%d", i)})
	}
	svc, _ := newService(t, mock)

	var reply *Reply
	for i := 0; i < 15; i++ {
		var err error
		reply, err = svc.Chat(t.Context(), "u1", fmt.Sprintf("q%d", i))
		require.NoError(t, err)
	}

	require.Len(t, reply.History, 20)
	assert.Equal(t, "q5", reply.History[0].Content, "oldest entries are evicted first")
	assert.Equal(t, "a14", reply.History[19].Content)
}

func TestChat_PromptContext(t *testing.T) {
	mock := llm.NewMockProvider()
	for i := 0; i < 7; i++ {
		mock.AddResponse(llm.MockResponse{Text: fmt.Sprintf("a%d", i)})
	}
	svc, s := newService(t, mock)

	require.NoError(t, s.LearningPathRepo().Save(t.Context(), &store.LearningPath{
		UserID: "u1",
		Weeks: []store.WeeklyUnit{
			{Week: "Week 1", Topics: []string{"Docker basics"}},
			{Week: "Week 2", Topics: []string{"Compose"}},
			{Week: "Week 3", Topics: []string{"Kubernetes"}},
		},
	}))

	for i := 0; i < 6; i++ {
		_, err := svc.Chat(t.Context(), "u1", fmt.Sprintf("q%d", i))
		require.NoError(t, err)
	}
	_, err := svc.Chat(t.Context(), "u1", "what next?")
	require.NoError(t, err)

	last := mock.Calls[len(mock.Calls)-1]
	assert.Equal(t, systemPrompt, last.System)
	msg := last.Messages[0].Content

	// 12 stored entries, only the last 10 are shown.
	assert.NotContains(t, msg, "Student: q0\n")
	assert.NotContains(t, msg, "Mentor: a0\n")
	assert.Contains(t, msg, "Student: q1\n")
	assert.Contains(t, msg, "Mentor: a5\n")
	assert.Contains(t, msg, `Student latest message: "what next?"`)

	assert.Contains(t, msg, "Docker basics")
	assert.Contains(t, msg, "Compose")
	assert.NotContains(t, msg, "Kubernetes", "only the first two weeks are summarized")
}

func TestChat_Unconfigured(t *testing.T) {
	svc, s := newService(t, llm.Unconfigured("anthropic"))

	_, err := svc.Chat(t.Context(), "u1", "hello")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAIUnavailable))

	var unconfigured *llm.ErrProviderUnconfigured
	assert.True(t, errors.As(err, &unconfigured))

	conv, err := s.ConversationRepo().Get(t.Context(), "u1")
	require.NoError(t, err)
	assert.Empty(t, conv.Entries)
}

func TestChat_ProviderFailureApologizes(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"request error", llm.MockResponse{Err: &llm.ErrProviderRequest{Provider: "mock", StatusCode: 503}}},
		{"empty reply", llm.MockResponse{Text: "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Text: "first answer"}, tt.resp)
			svc, _ := newService(t, mock)

			_, err := svc.Chat(t.Context(), "u1", "first")
			require.NoError(t, err)

			reply, err := svc.Chat(t.Context(), "u1", "second")
			require.NoError(t, err)
			assert.True(t, reply.Fallback)
			assert.Equal(t, apology, reply.Reply)
			assert.Len(t, reply.History, 2, "log must be unchanged")

			history, err := svc.History(t.Context(), "u1")
			require.NoError(t, err)
			assert.Len(t, history, 2)
		})
	}
}

func TestChat_EmptyMessage(t *testing.T) {
	mock := llm.NewMockProvider()
	svc, _ := newService(t, mock)

	_, err := svc.Chat(t.Context(), "u1", " \n ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Zero(t, mock.CallCount())
}

func TestChat_ModelOverride(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "ok"})
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	svc := NewService(mock, s.ConversationRepo(), s.LearningPathRepo(), Config{Model: "fast"}, nil)
	_, err = svc.Chat(t.Context(), "u1", "hi")
	require.NoError(t, err)
	assert.Equal(t, "fast", mock.Calls[0].Model)
	assert.True(t, strings.HasSuffix(mock.Calls[0].Messages[0].Content, "[]"), "no plan renders as an empty list")
}
