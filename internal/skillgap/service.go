// Package skillgap compares a user's resume against a target role and
// stores the resulting skill profile.
package skillgap

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/abhisek/careerpath/internal/llm"
	"github.com/abhisek/careerpath/internal/logger"
	"github.com/abhisek/careerpath/internal/resume"
	"github.com/abhisek/careerpath/internal/sanitize"
	"github.com/abhisek/careerpath/internal/store"
)

const site = "skill-gap"

// Service generates skill profiles.
type Service struct {
	provider llm.Provider
	resumes  store.ResumeRepo
	profiles store.SkillProfileRepo
	cfg      Config
	log      *logger.Logger
	now      func() time.Time
}

// NewService creates a skill gap service.
func NewService(provider llm.Provider, resumes store.ResumeRepo, profiles store.SkillProfileRepo, cfg Config, log *logger.Logger) *Service {
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
		cfg:      cfg,
		log:      log.With("service", "skillgap"),
		now:      time.Now,
	}
}

type report struct {
	ReadinessScore  float64                 `json:"readinessScore"`
	StrongSkills    []string                `json:"strongSkills"`
	WeakSkills      []string                `json:"weakSkills"`
	MissingSkills   []store.MissingSkill    `json:"missingSkills"`
	CurrentSkills   []reportSkillLevel      `json:"currentSkills"`
	DependencyGraph []store.SkillDependency `json:"dependencyGraph"`
	AIInsight       string                  `json:"aiInsight"`
}

type reportSkillLevel struct {
	Name  string  `json:"name"`
	Level float64 `json:"level"`
}

// Generate analyzes the user's resume against targetRole and upserts the
// skill profile. A missing resume is analyzed as empty. Provider and parse
// failures yield the fallback profile; only persistence errors are returned.
func (s *Service) Generate(ctx context.Context, userID, targetRole string) (*store.SkillProfile, error) {
	role := strings.TrimSpace(targetRole)
	if role == "" {
		role = s.cfg.DefaultRole
	}

	var facets store.ResumeFacets
	r, err := s.resumes.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load resume: %w", err)
	}
	if r != nil {
		facets = r.Parsed
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(role, facets)},
		},
		Schema:      ReportSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	res := sanitize.Complete(ctx, s.provider, req, site, fallbackReport)
	if res.Fallback {
		s.log.Warn("skill gap fallback", "user", userID, "role", role, "error", res.Err)
	}

	profile := buildProfile(res.Value, !res.Fallback)
	profile.UserID = userID
	profile.TargetRole = role
	profile.Fallback = res.Fallback
	profile.UpdatedAt = s.now()

	if err := s.profiles.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("save skill profile: %w", err)
	}

	s.log.Info("skill profile generated",
		"user", userID,
		"role", role,
		"readiness", profile.ReadinessScore,
		"missing", len(profile.MissingSkills),
		"fallback", profile.Fallback,
	)
	return profile, nil
}

// Get returns the user's stored skill profile, or nil.
func (s *Service) Get(ctx context.Context, userID string) (*store.SkillProfile, error) {
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load skill profile: %w", err)
	}
	return p, nil
}

// buildProfile normalizes a parsed report. Seeding of current skills only
// applies to model output.
func buildProfile(rep report, seed bool) *store.SkillProfile {
	strong := resume.NormalizeSkills(rep.StrongSkills)
	weak := without(resume.NormalizeSkills(rep.WeakSkills), strong)

	known := make(map[string]bool, len(strong)+len(weak))
	for _, n := range append(append([]string{}, strong...), weak...) {
		known[strings.ToLower(n)] = true
	}

	missing := make([]store.MissingSkill, 0, len(rep.MissingSkills))
	for _, m := range rep.MissingSkills {
		m.Name = resume.NormalizeSkillName(m.Name)
		key := strings.ToLower(m.Name)
		if m.Name == "" || known[key] {
			continue
		}
		known[key] = true
		m.Importance = coerceImportance(m.Importance)
		if m.LearningPlan.Steps == nil {
			m.LearningPlan.Steps = []string{}
		}
		missing = append(missing, m)
	}
	if len(missing) == 0 {
		missing = []store.MissingSkill{seedMissingSkill()}
	}

	current := normalizeLevels(rep.CurrentSkills)
	if len(current) == 0 && seed {
		current = seedLevels(strong, weak, missing)
	}

	graph := make([]store.SkillDependency, 0, len(rep.DependencyGraph))
	for _, d := range rep.DependencyGraph {
		d.Skill = resume.NormalizeSkillName(d.Skill)
		if d.Skill == "" {
			continue
		}
		d.Prerequisites = resume.NormalizeSkills(d.Prerequisites)
		graph = append(graph, d)
	}

	return &store.SkillProfile{
		ReadinessScore:  store.ClampScore(int(math.Round(rep.ReadinessScore))),
		StrongSkills:    strong,
		WeakSkills:      weak,
		MissingSkills:   missing,
		CurrentSkills:   current,
		DependencyGraph: graph,
		AIInsight:       strings.TrimSpace(rep.AIInsight),
	}
}

func coerceImportance(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "high", "critical":
		return store.ImportanceHigh
	default:
		return store.ImportanceMedium
	}
}

func normalizeLevels(levels []reportSkillLevel) []store.SkillLevel {
	out := make([]store.SkillLevel, 0, len(levels))
	seen := make(map[string]bool, len(levels))
	for _, l := range levels {
		name := resume.NormalizeSkillName(l.Name)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, store.SkillLevel{Name: name, Level: store.ClampScore(int(math.Round(l.Level)))})
	}
	return out
}

func seedLevels(strong, weak []string, missing []store.MissingSkill) []store.SkillLevel {
	out := make([]store.SkillLevel, 0, len(strong)+len(weak)+len(missing))
	for _, n := range strong {
		out = append(out, store.SkillLevel{Name: n, Level: seedStrongLevel})
	}
	for _, n := range weak {
		out = append(out, store.SkillLevel{Name: n, Level: seedWeakLevel})
	}
	for _, m := range missing {
		out = append(out, store.SkillLevel{Name: m.Name, Level: seedMissingLevel})
	}
	return out
}

// without returns the names of list not present in exclude.
func without(list, exclude []string) []string {
	skip := make(map[string]bool, len(exclude))
	for _, n := range exclude {
		skip[strings.ToLower(n)] = true
	}
	out := make([]string, 0, len(list))
	for _, n := range list {
		if !skip[strings.ToLower(n)] {
			out = append(out, n)
		}
	}
	return out
}
