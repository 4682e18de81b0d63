// Package roadmap generates month-by-month career roadmaps, one per
// (user, target role).
package roadmap

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/abhisek/careerpath/internal/llm"
	"github.com/abhisek/careerpath/internal/logger"
	"github.com/abhisek/careerpath/internal/metrics"
	"github.com/abhisek/careerpath/internal/sanitize"
	"github.com/abhisek/careerpath/internal/store"
)

const site = "career-roadmap"

// DefaultTargetRole is planned for when the caller names no role.
const DefaultTargetRole = "Full Stack Developer"

// Config holds roadmap generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	DefaultRole string
}

// DefaultConfig returns sensible defaults for roadmap generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4096,
		Temperature: 0.5,
		DefaultRole: DefaultTargetRole,
	}
}

// Service generates and reads career roadmaps.
type Service struct {
	provider llm.Provider
	resumes  store.ResumeRepo
	profiles store.SkillProfileRepo
	roadmaps store.RoadmapRepo
	cfg      Config
	log      *logger.Logger
	now      func() time.Time
}

// NewService creates a roadmap service.
func NewService(provider llm.Provider, resumes store.ResumeRepo, profiles store.SkillProfileRepo,
	roadmaps store.RoadmapRepo, cfg Config, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.DefaultRole == "" {
		cfg.DefaultRole = DefaultTargetRole
	}
	return &Service{
		provider: provider,
		resumes:  resumes,
		profiles: profiles,
		roadmaps: roadmaps,
		cfg:      cfg,
		log:      log.With("service", "roadmap"),
		now:      time.Now,
	}
}

type roadmapOutput struct {
	CurrentLevel              string            `json:"currentLevel"`
	Timeline                  string            `json:"timeline"`
	Milestones                []milestoneOutput `json:"milestones"`
	SkillGaps                 []string          `json:"skillGaps"`
	RecommendedCourses        []string          `json:"recommendedCourses"`
	InternshipRecommendations []string          `json:"internshipRecommendations"`
	ReadinessScore            float64           `json:"readinessScore"`
	NextSteps                 []string          `json:"nextSteps"`
}

type milestoneOutput struct {
	Month       int      `json:"month"`
	Title       string   `json:"title"`
	Skills      []string `json:"skills"`
	Projects    []string `json:"projects"`
	Resources   []string `json:"resources"`
	Checkpoints []string `json:"checkpoints"`
}

// Generate builds a roadmap toward targetRole and upserts it under
// (userID, targetRole). A user without a skill profile is planned from an
// empty profile.
func (s *Service) Generate(ctx context.Context, userID, targetRole string) (*store.CareerRoadmap, error) {
	role := s.role(targetRole)
	family := Classify(role)

	r, err := s.resumes.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load resume: %w", err)
	}
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load skill profile: %w", err)
	}
	if profile == nil {
		profile = &store.SkillProfile{UserID: userID}
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(role, family, r, profile)},
		},
		Schema:      RoadmapSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	fallback := func() roadmapOutput { return fallbackFor(family) }
	res := sanitize.Complete(ctx, s.provider, req, site, fallback)
	out, isFallback := res.Value, res.Fallback

	milestones := normalizeMilestones(out.Milestones)
	if len(milestones) == 0 && !isFallback {
		metrics.Fallbacks.WithLabelValues(site, "empty").Inc()
		res.Err = errors.New("roadmap has no milestones")
		out, isFallback = fallback(), true
		milestones = normalizeMilestones(out.Milestones)
	}
	if isFallback {
		s.log.Warn("roadmap fallback", "user", userID, "role", role, "family", family, "error", res.Err)
	}

	rm := &store.CareerRoadmap{
		UserID:                    userID,
		TargetRole:                role,
		CurrentLevel:              coerceLevel(out.CurrentLevel),
		Timeline:                  orDefault(out.Timeline, "6 months"),
		Milestones:                milestones,
		SkillGaps:                 nonBlank(out.SkillGaps),
		RecommendedCourses:        nonBlank(out.RecommendedCourses),
		InternshipRecommendations: nonBlank(out.InternshipRecommendations),
		ReadinessScore:            store.ClampScore(int(math.Round(out.ReadinessScore))),
		NextSteps:                 nonBlank(out.NextSteps),
		Fallback:                  isFallback,
		UpdatedAt:                 s.now(),
	}
	if len(rm.SkillGaps) == 0 {
		for _, m := range profile.MissingSkills {
			rm.SkillGaps = append(rm.SkillGaps, m.Name)
		}
	}

	if err := s.roadmaps.Save(ctx, rm); err != nil {
		return nil, fmt.Errorf("save roadmap: %w", err)
	}

	s.log.Info("roadmap generated",
		"user", userID,
		"role", role,
		"family", family,
		"milestones", len(rm.Milestones),
		"fallback", rm.Fallback,
	)
	return rm, nil
}

// Get returns the stored roadmap for (userID, targetRole), or nil.
func (s *Service) Get(ctx context.Context, userID, targetRole string) (*store.CareerRoadmap, error) {
	rm, err := s.roadmaps.Get(ctx, userID, s.role(targetRole))
	if err != nil {
		return nil, fmt.Errorf("load roadmap: %w", err)
	}
	return rm, nil
}

// List returns all of the user's roadmaps, most recently updated first.
func (s *Service) List(ctx context.Context, userID string) ([]store.CareerRoadmap, error) {
	rms, err := s.roadmaps.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list roadmaps: %w", err)
	}
	return rms, nil
}

func (s *Service) role(targetRole string) string {
	if role := strings.TrimSpace(targetRole); role != "" {
		return role
	}
	return s.cfg.DefaultRole
}

// normalizeMilestones drops untitled milestones, fixes non-positive months
// to their position, and sorts by month.
func normalizeMilestones(in []milestoneOutput) []store.Milestone {
	out := make([]store.Milestone, 0, len(in))
	for _, m := range in {
		title := strings.TrimSpace(m.Title)
		if title == "" {
			continue
		}
		month := m.Month
		if month <= 0 {
			month = len(out) + 1
		}
		out = append(out, store.Milestone{
			Month:       month,
			Title:       title,
			Skills:      nonBlank(m.Skills),
			Projects:    nonBlank(m.Projects),
			Resources:   nonBlank(m.Resources),
			Checkpoints: nonBlank(m.Checkpoints),
		})
	}
	slices.SortStableFunc(out, func(a, b store.Milestone) int { return a.Month - b.Month })
	return out
}

func coerceLevel(v string) string {
	switch l := strings.ToLower(strings.TrimSpace(v)); l {
	case "intermediate", "advanced":
		return l
	default:
		return "beginner"
	}
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
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
