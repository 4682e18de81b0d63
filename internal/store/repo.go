package store

import (
	"context"
	"time"
)

// Repository getters return (nil, nil) when the document does not exist.

// ResumeRepo manages one resume per user.
type ResumeRepo interface {
	Get(ctx context.Context, userID string) (*Resume, error)
	Save(ctx context.Context, r *Resume) error
}

// SkillProfileRepo manages one skill profile per user.
type SkillProfileRepo interface {
	Get(ctx context.Context, userID string) (*SkillProfile, error)
	Save(ctx context.Context, p *SkillProfile) error
}

// LearningPathRepo manages one learning path per user. Save replaces the
// stored path wholesale.
type LearningPathRepo interface {
	Get(ctx context.Context, userID string) (*LearningPath, error)
	Save(ctx context.Context, p *LearningPath) error
}

// RoadmapRepo manages roadmaps keyed by (user, target role).
type RoadmapRepo interface {
	Get(ctx context.Context, userID, targetRole string) (*CareerRoadmap, error)
	Save(ctx context.Context, r *CareerRoadmap) error

	// List returns every roadmap of the user, most recently updated first.
	List(ctx context.Context, userID string) ([]CareerRoadmap, error)
}

// QuizRepo stores immutable quiz results.
type QuizRepo interface {
	Append(ctx context.Context, q *QuizResult) error

	// Recent returns up to limit results, newest first.
	Recent(ctx context.Context, userID string, limit int) ([]QuizResult, error)
}

// ProgressRepo manages one progress signal per user.
type ProgressRepo interface {
	Get(ctx context.Context, userID string) (*ProgressSignal, error)
	Save(ctx context.Context, p *ProgressSignal) error
}

// ConversationRepo manages capped per-user conversation logs.
type ConversationRepo interface {
	// Get returns the user's log; an absent log is returned empty.
	Get(ctx context.Context, userID string) (*ConversationLog, error)

	// Append adds entries atomically and evicts the oldest entries so that
	// at most limit remain.
	Append(ctx context.Context, userID string, limit int, entries ...ConversationEntry) (*ConversationLog, error)
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int       // id > After
	Before int       // id < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs float64
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}
