package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
	if s.Dialect() != "sqlite3" {
		t.Errorf("dialect = %q, want sqlite3", s.Dialect())
	}
}

func TestOpenWith_UnknownDriver(t *testing.T) {
	_, err := OpenWith(context.Background(), Config{Driver: "oracle", DSN: "x"})
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"journal_mode", "wal"},
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestWithPragmas(t *testing.T) {
	tests := []struct {
		dsn        string
		wantPrefix string
	}{
		{"app.db", "app.db?_pragma="},
		{"file:x?mode=memory", "file:x?mode=memory&_pragma="},
		{"app.db?_pragma=foreign_keys(1)", "app.db?_pragma=foreign_keys(1)"},
	}
	for _, tt := range tests {
		got := withPragmas(tt.dsn)
		if !strings.HasPrefix(got, tt.wantPrefix) {
			t.Errorf("withPragmas(%q) = %q, want prefix %q", tt.dsn, got, tt.wantPrefix)
		}
	}
	if got := withPragmas("app.db?_pragma=foreign_keys(1)"); strings.Count(got, "_pragma=") != 1 {
		t.Errorf("explicit pragmas were extended: %q", got)
	}
}

func TestResumeUpsert(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResumeRepo()
	ctx := context.Background()

	got, err := repo.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get (empty): %v", err)
	}
	if got != nil {
		t.Fatal("expected nil resume when none exist")
	}

	first := &Resume{UserID: "u1", Parsed: ResumeFacets{TechnicalSkills: []string{"Go"}}}
	if err := repo.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	second := &Resume{UserID: "u1", Parsed: ResumeFacets{TechnicalSkills: []string{"Rust", "SQL"}}}
	if err := repo.Save(ctx, second); err != nil {
		t.Fatalf("save again: %v", err)
	}

	got, err = repo.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Parsed.TechnicalSkills) != 2 || got.Parsed.TechnicalSkills[0] != "Rust" {
		t.Errorf("skills = %v, want [Rust SQL]", got.Parsed.TechnicalSkills)
	}

	var rows int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM resumes").Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Errorf("rows = %d, want 1", rows)
	}
}

func TestLearningPathReplacedWholesale(t *testing.T) {
	s := openTestStore(t)
	repo := s.LearningPathRepo()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		path := &LearningPath{
			UserID: "u1",
			Weeks: []WeeklyUnit{
				{Week: "Week 1", Topics: []string{fmt.Sprintf("topic-%d", i)}},
			},
			SkillLevels: map[string]int{"Go": 10 * i},
		}
		if err := repo.Save(ctx, path); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	got, err := repo.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Weeks) != 1 || got.Weeks[0].Topics[0] != "topic-1" {
		t.Errorf("weeks = %+v, want the second plan only", got.Weeks)
	}
	if got.SkillLevels["Go"] != 10 {
		t.Errorf("Go level = %d, want 10", got.SkillLevels["Go"])
	}
}

func TestRoadmapsKeyedByRole(t *testing.T) {
	s := openTestStore(t)
	repo := s.RoadmapRepo()
	ctx := context.Background()

	devops := &CareerRoadmap{UserID: "u1", TargetRole: "DevOps Engineer", ReadinessScore: 40}
	data := &CareerRoadmap{UserID: "u1", TargetRole: "Data Engineer", ReadinessScore: 45}
	other := &CareerRoadmap{UserID: "u2", TargetRole: "DevOps Engineer", ReadinessScore: 10}
	for _, r := range []*CareerRoadmap{devops, data, other} {
		if err := repo.Save(ctx, r); err != nil {
			t.Fatalf("save %s: %v", r.TargetRole, err)
		}
	}

	got, err := repo.Get(ctx, "u1", "DevOps Engineer")
	if err != nil {
		t.Fatalf("get devops: %v", err)
	}
	if got == nil || got.ReadinessScore != 40 {
		t.Fatalf("devops roadmap = %+v, want readiness 40", got)
	}
	got, err = repo.Get(ctx, "u1", "Data Engineer")
	if err != nil {
		t.Fatalf("get data: %v", err)
	}
	if got == nil || got.ReadinessScore != 45 {
		t.Fatalf("data roadmap = %+v, want readiness 45", got)
	}

	list, err := repo.List(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("list len = %d, want 2", len(list))
	}

	// Re-saving one role must not touch the other.
	devops.ReadinessScore = 55
	devops.UpdatedAt = time.Time{}
	if err := repo.Save(ctx, devops); err != nil {
		t.Fatalf("resave: %v", err)
	}
	got, _ = repo.Get(ctx, "u1", "Data Engineer")
	if got.ReadinessScore != 45 {
		t.Errorf("data readiness = %d after devops resave, want 45", got.ReadinessScore)
	}
}

func TestQuizRecentNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuizRepo()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 25; i++ {
		q := &QuizResult{
			ID:      uuid.NewString(),
			UserID:  "u1",
			Course:  "go",
			Score:   i,
			TakenAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := repo.Append(ctx, q); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	got, err := repo.Recent(ctx, "u1", 20)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 20 {
		t.Fatalf("len = %d, want 20", len(got))
	}
	if got[0].Score != 24 || got[19].Score != 5 {
		t.Errorf("order = %d..%d, want 24..5", got[0].Score, got[19].Score)
	}

	none, err := repo.Recent(ctx, "nobody", 20)
	if err != nil {
		t.Fatalf("recent (empty): %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no results, got %d", len(none))
	}
}

func TestQuizAppendRequiresID(t *testing.T) {
	s := openTestStore(t)
	if err := s.QuizRepo().Append(context.Background(), &QuizResult{UserID: "u1"}); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestProgressDefaultsToAverage(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, &ProgressSignal{UserID: "u1", StudyMinutesLastWeek: 200}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SpeedLabel != SpeedAverage {
		t.Errorf("speed label = %q, want %q", got.SpeedLabel, SpeedAverage)
	}
}

func TestConversationCappedAt20(t *testing.T) {
	s := openTestStore(t)
	repo := s.ConversationRepo()
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := repo.Append(ctx, "u1", 20,
			ConversationEntry{Role: ChatRoleUser, Content: fmt.Sprintf("q%d", i)},
			ConversationEntry{Role: ChatRoleAssistant, Content: fmt.Sprintf("a%d", i)},
		)
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	log, err := repo.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(log.Entries) != 20 {
		t.Fatalf("entries = %d, want 20", len(log.Entries))
	}
	if log.Entries[0].Content != "q5" || log.Entries[19].Content != "a14" {
		t.Errorf("window = %q..%q, want q5..a14", log.Entries[0].Content, log.Entries[19].Content)
	}

	empty, err := repo.Get(ctx, "u2")
	if err != nil {
		t.Fatalf("get empty: %v", err)
	}
	if empty == nil || len(empty.Entries) != 0 {
		t.Errorf("expected empty log, got %+v", empty)
	}
}

func TestCapEntries(t *testing.T) {
	entries := make([]ConversationEntry, 5)
	for i := range entries {
		entries[i].Content = fmt.Sprint(i)
	}
	if got := CapEntries(entries, 3); len(got) != 3 || got[0].Content != "2" {
		t.Errorf("CapEntries(5, 3) = %+v", got)
	}
	if got := CapEntries(entries, 0); len(got) != 5 {
		t.Errorf("CapEntries(5, 0) len = %d, want 5", len(got))
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "skill-gap", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "skill-gap", InputTokens: 80, OutputTokens: 40, LatencyMs: 100, Success: true},
		{Provider: "openai", Model: "gpt-4o", Purpose: "roadmap", Success: false, ErrorMessage: "boom"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Purpose != "roadmap" || got[0].ErrorMessage != "boom" {
		t.Errorf("newest = %+v, want the roadmap failure", got[0])
	}

	one, err := repo.GetLLMEvent(ctx, got[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if one == nil || one.InputTokens != 80 {
		t.Errorf("event = %+v, want input tokens 80", one)
	}
	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("GetLLMEvent(9999) = %v, %v; want nil, nil", missing, err)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(byPurpose) != 2 || byPurpose[0].Purpose != "skill-gap" || byPurpose[0].Calls != 2 {
		t.Fatalf("by purpose = %+v", byPurpose)
	}
	if byPurpose[0].InputTokens != 180 || byPurpose[0].AvgLatencyMs != 150 {
		t.Errorf("skill-gap usage = %+v", byPurpose[0])
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "gpt-4o-mini" {
		t.Errorf("by model = %+v", byModel)
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct{ in, want int }{
		{-5, 0}, {0, 0}, {55, 55}, {100, 100}, {130, 100},
	}
	for _, tt := range tests {
		if got := ClampScore(tt.in); got != tt.want {
			t.Errorf("ClampScore(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDefaultDBPath_EnvOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "x.db")
	t.Setenv("CAREERPATH_DB", p)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != p {
		t.Errorf("path = %q, want %q", got, p)
	}
}
