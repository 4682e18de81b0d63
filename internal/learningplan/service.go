// Package learningplan expands a skill profile into a weekly curriculum.
package learningplan

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/careerpath/internal/llm"
	"github.com/abhisek/careerpath/internal/logger"
	"github.com/abhisek/careerpath/internal/metrics"
	"github.com/abhisek/careerpath/internal/resume"
	"github.com/abhisek/careerpath/internal/sanitize"
	"github.com/abhisek/careerpath/internal/store"
)

const site = "learning-plan"

// ErrPreconditionMissing is returned when the user has no skill profile
// to plan from.
var ErrPreconditionMissing = errors.New("skill profile required before generating a learning plan")

// Confidence levels reported with a plan.
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// Service generates learning paths.
type Service struct {
	provider llm.Provider
	resumes  store.ResumeRepo
	profiles store.SkillProfileRepo
	paths    store.LearningPathRepo
	cfg      Config
	validate *validator.Validate
	log      *logger.Logger
	now      func() time.Time
}

// NewService creates a learning plan service.
func NewService(provider llm.Provider, resumes store.ResumeRepo, profiles store.SkillProfileRepo,
	paths store.LearningPathRepo, cfg Config, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		provider: provider,
		resumes:  resumes,
		profiles: profiles,
		paths:    paths,
		cfg:      cfg,
		validate: validator.New(),
		log:      log.With("service", "learningplan"),
		now:      time.Now,
	}
}

type planOutput struct {
	LearningPath            []unitOutput       `json:"learningPath"`
	SkillLevels             map[string]float64 `json:"skillLevels"`
	EstimatedCompletionTime string             `json:"estimatedCompletionTime"`
	ConfidenceLevel         string             `json:"confidenceLevel"`
}

type unitOutput struct {
	Week     string   `json:"week"`
	Theme    string   `json:"theme"`
	Topics   []string `json:"topics"`
	Reason   string   `json:"reason"`
	Projects []string `json:"projects"`
	Practice []string `json:"practice"`
	Quizzes  []string `json:"quizzes"`
	Outcome  string   `json:"outcome"`
}

// Generate builds a plan from the user's stored skill profile and replaces
// the stored learning path. It returns ErrPreconditionMissing when no
// profile exists.
func (s *Service) Generate(ctx context.Context, userID string, hints Hints) (*store.LearningPath, error) {
	if err := s.validate.Struct(hints); err != nil {
		return nil, fmt.Errorf("invalid hints: %w", err)
	}
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load skill profile: %w", err)
	}
	if profile == nil {
		return nil, ErrPreconditionMissing
	}
	return s.GenerateFor(ctx, userID, profile, hints)
}

// GenerateFor runs the same pipeline as Generate with a caller-supplied
// profile, which is not persisted.
func (s *Service) GenerateFor(ctx context.Context, userID string, profile *store.SkillProfile, hints Hints) (*store.LearningPath, error) {
	if profile == nil {
		return nil, ErrPreconditionMissing
	}

	r, err := s.resumes.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load resume: %w", err)
	}
	if hints.ExperienceLevel == "" {
		hints.ExperienceLevel = InferLevel(r)
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(profile, r, hints)},
		},
		Schema:      PlanSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	res := sanitize.Complete(ctx, s.provider, req, site, fallbackPlan)
	out, fallback := res.Value, res.Fallback

	weeks := normalizeWeeks(out.LearningPath)
	if len(weeks) == 0 && !fallback {
		metrics.Fallbacks.WithLabelValues(site, "empty").Inc()
		res.Err = errors.New("plan has no unit with topics")
		out, fallback = fallbackPlan(), true
		weeks = normalizeWeeks(out.LearningPath)
	}
	if fallback {
		s.log.Warn("learning plan fallback", "user", userID, "error", res.Err)
	}

	path := &store.LearningPath{
		UserID:              userID,
		Weeks:               weeks,
		SkillLevels:         mergeLevels(out.SkillLevels, profile.CurrentSkills),
		EstimatedCompletion: strings.TrimSpace(out.EstimatedCompletionTime),
		Confidence:          coerceConfidence(out.ConfidenceLevel),
		Fallback:            fallback,
		LastRecalculatedAt:  s.now(),
	}
	if path.EstimatedCompletion == "" {
		path.EstimatedCompletion = weeksLabel(len(weeks))
	}

	if err := s.paths.Save(ctx, path); err != nil {
		return nil, fmt.Errorf("save learning path: %w", err)
	}

	s.log.Info("learning path generated",
		"user", userID,
		"level", hints.ExperienceLevel,
		"weeks", len(path.Weeks),
		"fallback", path.Fallback,
	)
	return path, nil
}

// Get returns the user's stored learning path, or nil.
func (s *Service) Get(ctx context.Context, userID string) (*store.LearningPath, error) {
	p, err := s.paths.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load learning path: %w", err)
	}
	return p, nil
}

// normalizeWeeks drops units without topics and labels unlabeled units
// by their position.
func normalizeWeeks(units []unitOutput) []store.WeeklyUnit {
	weeks := make([]store.WeeklyUnit, 0, len(units))
	for _, u := range units {
		topics := nonBlank(u.Topics)
		if len(topics) == 0 {
			continue
		}
		label := strings.TrimSpace(u.Week)
		if label == "" {
			label = fmt.Sprintf("Week %d", len(weeks)+1)
		}
		weeks = append(weeks, store.WeeklyUnit{
			Week:     label,
			Theme:    strings.TrimSpace(u.Theme),
			Topics:   topics,
			Reason:   strings.TrimSpace(u.Reason),
			Projects: nonBlank(u.Projects),
			Practice: nonBlank(u.Practice),
			Quizzes:  nonBlank(u.Quizzes),
			Outcome:  strings.TrimSpace(u.Outcome),
		})
	}
	return weeks
}

// mergeLevels overlays the profile's current skills on the model's
// estimates. Every level is clamped to [0, 100].
func mergeLevels(model map[string]float64, current []store.SkillLevel) map[string]int {
	levels := make(map[string]int, len(model)+len(current))
	for name, v := range model {
		n := resume.NormalizeSkillName(name)
		if n == "" {
			continue
		}
		levels[n] = store.ClampScore(int(math.Round(v)))
	}
	for _, sl := range current {
		if sl.Name == "" {
			continue
		}
		levels[sl.Name] = store.ClampScore(sl.Level)
	}
	return levels
}

func weeksLabel(n int) string {
	if n == 1 {
		return "1 Week"
	}
	return fmt.Sprintf("%d Weeks", n)
}

func coerceConfidence(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "high":
		return ConfidenceHigh
	case "low":
		return ConfidenceLow
	default:
		return ConfidenceMedium
	}
}

func nonBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if t := strings.TrimSpace(it); t != "" {
			out = append(out, t)
		}
	}
	return out
}
