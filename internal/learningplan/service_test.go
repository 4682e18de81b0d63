package learningplan

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/careerpath/internal/llm"
	"github.com/abhisek/careerpath/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newService(t *testing.T, p llm.Provider) (*Service, *store.Store) {
	t.Helper()
	s := openTestStore(t)
	svc := NewService(p, s.ResumeRepo(), s.SkillProfileRepo(), s.LearningPathRepo(), DefaultConfig(), nil)
	return svc, s
}

func testProfile() *store.SkillProfile {
	return &store.SkillProfile{
		UserID:       "u1",
		TargetRole:   "Backend Developer",
		StrongSkills: []string{"Go"},
		WeakSkills:   []string{"SQL"},
		MissingSkills: []store.MissingSkill{
			{Name: "Docker", Importance: store.ImportanceHigh, Reason: "Deployments run in containers"},
		},
		CurrentSkills: []store.SkillLevel{
			{Name: "Go", Level: 75},
			{Name: "SQL", Level: 45},
			{Name: "Docker", Level: 15},
		},
	}
}

func saveProfile(t *testing.T, s *store.Store, p *store.SkillProfile) {
	t.Helper()
	if err := s.SkillProfileRepo().Save(context.Background(), p); err != nil {
		t.Fatalf("save profile: %v", err)
	}
}

const validPlan = `{
	"learningPath": [
		{"week": "Week 1", "theme": "Containers", "topics": ["Docker images", " "], "projects": ["Containerize an API"], "practice": ["Write a Dockerfile"], "quizzes": ["Layers"], "reason": "You lack Docker", "outcome": "Ship an image"},
		{"week": "Week 2", "topics": []},
		{"topics": ["SQL joins"], "reason": "SQL is weak"}
	],
	"skillLevels": {"docker": 20, "Kubernetes": 130, "Go": 10},
	"estimatedCompletionTime": "2 Weeks",
	"confidenceLevel": "high"
}`

func TestGenerate_PreconditionMissing(t *testing.T) {
	mock := llm.NewMockProvider()
	svc, _ := newService(t, mock)

	_, err := svc.Generate(t.Context(), "u1", Hints{})
	if !errors.Is(err, ErrPreconditionMissing) {
		t.Fatalf("expected ErrPreconditionMissing, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Error("provider should not be called without a profile")
	}
}

func TestGenerate_InvalidHints(t *testing.T) {
	mock := llm.NewMockProvider()
	svc, s := newService(t, mock)
	saveProfile(t, s, testProfile())

	for _, h := range []Hints{
		{ExperienceLevel: "Wizard"},
		{Difficulty: "brutal"},
		{Pace: "glacial"},
	} {
		_, err := svc.Generate(t.Context(), "u1", h)
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("hints %+v: expected validation error, got %v", h, err)
		}
	}
	if mock.CallCount() != 0 {
		t.Error("provider should not be called with invalid hints")
	}
}

func TestGenerate_NormalizesPlan(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "```json\n" + validPlan + "\n```"})
	svc, s := newService(t, mock)
	saveProfile(t, s, testProfile())

	before := time.Now()
	path, err := svc.Generate(t.Context(), "u1", Hints{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if path.Fallback {
		t.Fatal("expected a real plan")
	}
	if len(path.Weeks) != 2 {
		t.Fatalf("weeks = %+v, want 2 (empty unit dropped)", path.Weeks)
	}
	if got := path.Weeks[0].Topics; len(got) != 1 || got[0] != "Docker images" {
		t.Errorf("week 1 topics = %v", got)
	}
	if path.Weeks[1].Week != "Week 2" {
		t.Errorf("unlabeled unit = %q, want positional label Week 2", path.Weeks[1].Week)
	}

	want := map[string]int{"Docker": 15, "Kubernetes": 100, "Go": 75, "SQL": 45}
	if len(path.SkillLevels) != len(want) {
		t.Fatalf("skill levels = %v", path.SkillLevels)
	}
	for name, lvl := range want {
		if path.SkillLevels[name] != lvl {
			t.Errorf("level[%s] = %d, want %d", name, path.SkillLevels[name], lvl)
		}
	}

	if path.Confidence != ConfidenceHigh {
		t.Errorf("confidence = %q", path.Confidence)
	}
	if path.EstimatedCompletion != "2 Weeks" {
		t.Errorf("estimated = %q", path.EstimatedCompletion)
	}
	if path.LastRecalculatedAt.Before(before) {
		t.Error("lastRecalculatedAt not set to generation time")
	}

	stored, err := s.LearningPathRepo().Get(t.Context(), "u1")
	if err != nil || stored == nil {
		t.Fatalf("stored path: %v %v", stored, err)
	}
	if len(stored.Weeks) != 2 {
		t.Errorf("stored weeks = %d", len(stored.Weeks))
	}
}

func TestGenerate_ReplacesWholesale(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: validPlan},
		llm.MockResponse{Text: `{"learningPath": [{"topics": ["Only topic"]}]}`},
	)
	svc, s := newService(t, mock)
	saveProfile(t, s, testProfile())

	if _, err := svc.Generate(t.Context(), "u1", Hints{}); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := svc.Generate(t.Context(), "u1", Hints{}); err != nil {
		t.Fatalf("second: %v", err)
	}

	stored, err := s.LearningPathRepo().Get(t.Context(), "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(stored.Weeks) != 1 || stored.Weeks[0].Topics[0] != "Only topic" {
		t.Errorf("expected only the second plan, got %+v", stored.Weeks)
	}
	if _, ok := stored.SkillLevels["Kubernetes"]; ok {
		t.Error("skill levels from the first plan survived")
	}
	if stored.EstimatedCompletion != "1 Week" {
		t.Errorf("estimated = %q", stored.EstimatedCompletion)
	}
	if stored.Confidence != ConfidenceMedium {
		t.Errorf("confidence = %q, want Medium default", stored.Confidence)
	}
}

func TestGenerate_Fallbacks(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"provider error", llm.MockResponse{Err: &llm.ErrProviderRequest{Provider: "mock", StatusCode: 503}}},
		{"malformed", llm.MockResponse{Text: "Here is your plan: week one, learn docker"}},
		{"no usable units", llm.MockResponse{Text: `{"learningPath": [{"week": "Week 1", "topics": []}]}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, s := newService(t, llm.NewMockProvider(tt.resp))
			saveProfile(t, s, testProfile())

			path, err := svc.Generate(t.Context(), "u1", Hints{})
			if err != nil {
				t.Fatalf("fallback must not error: %v", err)
			}
			if !path.Fallback {
				t.Fatal("expected fallback plan")
			}
			if len(path.Weeks) != 1 || path.Weeks[0].Week != "Week 1" || path.Weeks[0].Topics[0] != "Gap Analysis Retry" {
				t.Errorf("weeks = %+v", path.Weeks)
			}
			if path.Confidence != ConfidenceLow || path.EstimatedCompletion != "Unknown" {
				t.Errorf("confidence/estimate = %q/%q", path.Confidence, path.EstimatedCompletion)
			}
			if path.SkillLevels["Docker"] != 15 || path.SkillLevels["Go"] != 75 {
				t.Errorf("fallback skill levels should come from the profile, got %v", path.SkillLevels)
			}
		})
	}
}

func TestGenerate_Hints(t *testing.T) {
	tests := []struct {
		name       string
		experience []store.Experience
		hints      Hints
		want       []string
	}{
		{"inferred student", nil, Hints{}, []string{"EXPERIENCE LEVEL: Student"}},
		{"inferred fresher", []store.Experience{{Title: "Intern"}}, Hints{}, []string{"EXPERIENCE LEVEL: Fresher"}},
		{"inferred professional", []store.Experience{{Title: "A"}, {Title: "B"}}, Hints{}, []string{"EXPERIENCE LEVEL: Professional"}},
		{"explicit level and industry", nil, Hints{ExperienceLevel: LevelProfessional, Industry: "Fintech"},
			[]string{"EXPERIENCE LEVEL: Professional", "INDUSTRY: Fintech"}},
		{"performance", nil, Hints{Difficulty: "hard", Pace: "slow"},
			[]string{"QUIZ PERFORMANCE: hard", "STUDY PACE: slow", "favor advanced topics", "Keep each week small"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Text: validPlan})
			svc, s := newService(t, mock)
			saveProfile(t, s, testProfile())
			err := s.ResumeRepo().Save(t.Context(), &store.Resume{
				UserID: "u1",
				Parsed: store.ResumeFacets{Experience: tt.experience},
			})
			if err != nil {
				t.Fatalf("save resume: %v", err)
			}

			if _, err := svc.Generate(t.Context(), "u1", tt.hints); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			msg := mock.Calls[0].Messages[0].Content
			for _, w := range tt.want {
				if !strings.Contains(msg, w) {
					t.Errorf("prompt missing %q:\n%s", w, msg)
				}
			}
		})
	}
}

func TestGenerate_PromptSections(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: validPlan})
	svc, s := newService(t, mock)
	saveProfile(t, s, testProfile())

	if _, err := svc.Generate(t.Context(), "u1", Hints{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := mock.Calls[0]
	if req.Schema != PlanSchema {
		t.Error("expected learning plan schema on request")
	}
	msg := req.Messages[0].Content
	for _, want := range []string{
		"TARGET ROLE: Backend Developer",
		"SKILLS TO SKIP (already known):\n- Go",
		"- Docker [High]: Deployments run in containers",
		"WEAK AREAS (reinforce):\n- SQL",
		"CURRENT LEVELS (0-100):\n- Go: 75\n- SQL: 45\n- Docker: 15",
		"learning path of 8 weeks",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
}

func TestGenerateFor_UsesSuppliedProfile(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: `{"learningPath": [{"topics": ["x"]}]}`})
	svc, s := newService(t, mock)
	stored := testProfile()
	saveProfile(t, s, stored)

	perturbed := stored.Clone()
	for i := range perturbed.CurrentSkills {
		perturbed.CurrentSkills[i].Level = store.ClampScore(perturbed.CurrentSkills[i].Level + 10)
	}

	path, err := svc.GenerateFor(t.Context(), "u1", perturbed, Hints{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path.SkillLevels["Go"] != 85 || path.SkillLevels["Docker"] != 25 {
		t.Errorf("levels = %v, want perturbed values", path.SkillLevels)
	}

	again, err := s.SkillProfileRepo().Get(t.Context(), "u1")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if again.CurrentSkills[0].Level != 75 {
		t.Errorf("stored profile was rewritten: %+v", again.CurrentSkills)
	}
}

func TestInferLevel(t *testing.T) {
	if got := InferLevel(nil); got != LevelStudent {
		t.Errorf("nil resume = %q", got)
	}
	r := &store.Resume{Parsed: store.ResumeFacets{Experience: make([]store.Experience, 3)}}
	if got := InferLevel(r); got != LevelProfessional {
		t.Errorf("three entries = %q", got)
	}
}
