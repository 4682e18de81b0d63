// Package career answers one-off advisory questions about target roles:
// two-role comparisons, fit, long-term risk and a simulated recruiter
// evaluation. Results are computed on demand and not stored.
package career

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/careerpath/internal/learningplan"
	"github.com/abhisek/careerpath/internal/llm"
	"github.com/abhisek/careerpath/internal/logger"
	"github.com/abhisek/careerpath/internal/resume"
	"github.com/abhisek/careerpath/internal/sanitize"
	"github.com/abhisek/careerpath/internal/store"
)

// contextItems caps the experience and project lines sent to the model.
const contextItems = 5

// ErrSameRole is returned when a comparison names the same role twice.
var ErrSameRole = errors.New("roles to compare must differ")

// Service runs the career advisory calls.
type Service struct {
	provider llm.Provider
	resumes  store.ResumeRepo
	profiles store.SkillProfileRepo
	cfg      Config
	validate *validator.Validate
	log      *logger.Logger
}

// NewService creates a career advisory service.
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
		validate: validator.New(),
		log:      log.With("service", "career"),
	}
}

type roleInput struct {
	UserID string `validate:"required,max=128"`
	Role   string `validate:"required,max=100"`
}

type compareInput struct {
	UserID string `validate:"required,max=128"`
	RoleA  string `validate:"required,max=100"`
	RoleB  string `validate:"required,max=100"`
}

type compareOutput struct {
	Comparison []criterionOutput `json:"comparison"`
	Verdict    verdictOutput     `json:"verdict"`
}

type criterionOutput struct {
	Criteria string `json:"criteria"`
	RoleA    string `json:"roleA"`
	RoleB    string `json:"roleB"`
	Winner   string `json:"winner"`
	Insight  string `json:"insight"`
}

type verdictOutput struct {
	Role     string `json:"role"`
	Reason   string `json:"reason"`
	TradeOff string `json:"tradeOff"`
}

type matchOutput struct {
	Confidence           float64     `json:"confidence"`
	Reason               string      `json:"reason"`
	SkillGaps            []gapOutput `json:"skillGaps"`
	PrioritySkills       []string    `json:"prioritySkills"`
	ReadinessScore       float64     `json:"readinessScore"`
	ReadinessExplanation string      `json:"readinessExplanation"`
}

type gapOutput struct {
	Skill      string `json:"skill"`
	Importance string `json:"importance"`
}

type riskOutput struct {
	StabilityScore    float64  `json:"stabilityScore"`
	RiskLevel         string   `json:"riskLevel"`
	LayoffRisk        string   `json:"layoffRisk"`
	AutomationRisk    string   `json:"automationRisk"`
	CompetitionLevel  string   `json:"competitionLevel"`
	Insight           string   `json:"insight"`
	Mitigation        []string `json:"mitigation"`
	FutureProofingTip string   `json:"futureProofingTip"`
}

type hiringOutput struct {
	ResumeSignalStrength  float64  `json:"resumeSignalStrength"`
	SkillMatchScore       float64  `json:"skillMatchScore"`
	ProjectRelevanceScore float64  `json:"projectRelevanceScore"`
	InterviewProbability  float64  `json:"interviewProbability"`
	Summary               string   `json:"summary"`
	RecruiterInsight      string   `json:"recruiterInsight"`
	Strengths             []string `json:"strengths"`
	Weaknesses            []string `json:"weaknesses"`
	ImprovementActions    []string `json:"improvementActions"`
	Verdict               string   `json:"verdict"`
}

// Compare weighs roleA against roleB for the user. Provider and parse
// failures yield a comparison that recommends roleA with no criteria.
func (s *Service) Compare(ctx context.Context, userID, roleA, roleB string) (*RoleComparison, error) {
	in := compareInput{UserID: userID, RoleA: strings.TrimSpace(roleA), RoleB: strings.TrimSpace(roleB)}
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid comparison: %w", err)
	}
	if strings.EqualFold(in.RoleA, in.RoleB) {
		return nil, ErrSameRole
	}

	c, err := s.candidate(ctx, userID)
	if err != nil {
		return nil, err
	}

	req := s.request(compareSystemPrompt, buildCompareMessage(c, in.RoleA, in.RoleB), CompareSchema)
	res := sanitize.Complete(ctx, s.provider, req, CompareSchema.Name, fallbackCompare(in.RoleA))
	if res.Fallback {
		s.log.Warn("role comparison fallback", "user", userID, "error", res.Err)
	}

	out := &RoleComparison{
		RoleA:    in.RoleA,
		RoleB:    in.RoleB,
		Criteria: make([]Criterion, 0, len(res.Value.Comparison)),
		Verdict: Verdict{
			Role:     resolveRole(res.Value.Verdict.Role, in.RoleA, in.RoleB),
			Reason:   strings.TrimSpace(res.Value.Verdict.Reason),
			TradeOff: strings.TrimSpace(res.Value.Verdict.TradeOff),
		},
		Fallback: res.Fallback,
	}
	for _, cr := range res.Value.Comparison {
		name := strings.TrimSpace(cr.Criteria)
		if name == "" {
			continue
		}
		out.Criteria = append(out.Criteria, Criterion{
			Name:    name,
			RoleA:   strings.TrimSpace(cr.RoleA),
			RoleB:   strings.TrimSpace(cr.RoleB),
			Winner:  coerceWinner(cr.Winner, in.RoleA, in.RoleB),
			Insight: strings.TrimSpace(cr.Insight),
		})
	}

	s.log.Info("roles compared", "user", userID, "role_a", in.RoleA, "role_b", in.RoleB,
		"verdict", out.Verdict.Role, "fallback", out.Fallback)
	return out, nil
}

// Match scores the user's fit for role. Without a provider the estimate
// comes from the stored skill profile when it targets the same role.
func (s *Service) Match(ctx context.Context, userID, role string) (*RoleMatch, error) {
	role, err := s.role(userID, role)
	if err != nil {
		return nil, err
	}
	c, err := s.candidate(ctx, userID)
	if err != nil {
		return nil, err
	}

	req := s.request(matchSystemPrompt,
		buildRoleMessage(c, role, "Analyze how well this candidate fits the target role."), MatchSchema)
	res := sanitize.Complete(ctx, s.provider, req, MatchSchema.Name, fallbackMatch(c, role))
	if res.Fallback {
		s.log.Warn("role match fallback", "user", userID, "role", role, "error", res.Err)
	}

	v := res.Value
	out := &RoleMatch{
		TargetRole:           role,
		Confidence:           score(v.Confidence),
		Reason:               strings.TrimSpace(v.Reason),
		SkillGaps:            make([]SkillGap, 0, len(v.SkillGaps)),
		PrioritySkills:       resume.NormalizeSkills(v.PrioritySkills),
		ReadinessScore:       score(v.ReadinessScore),
		ReadinessExplanation: strings.TrimSpace(v.ReadinessExplanation),
		Fallback:             res.Fallback,
	}
	seen := make(map[string]bool, len(v.SkillGaps))
	for _, g := range v.SkillGaps {
		name := resume.NormalizeSkillName(g.Skill)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		out.SkillGaps = append(out.SkillGaps, SkillGap{Skill: name, Importance: coerceImportance(g.Importance)})
	}

	s.log.Info("role matched", "user", userID, "role", role, "confidence", out.Confidence, "fallback", out.Fallback)
	return out, nil
}

// Risk rates the long-term stability of role for the user.
func (s *Service) Risk(ctx context.Context, userID, role string) (*RiskReport, error) {
	role, err := s.role(userID, role)
	if err != nil {
		return nil, err
	}
	c, err := s.candidate(ctx, userID)
	if err != nil {
		return nil, err
	}

	req := s.request(riskSystemPrompt,
		buildRoleMessage(c, role, "Analyze the risk and stability of this role for the candidate."), RiskSchema)
	res := sanitize.Complete(ctx, s.provider, req, RiskSchema.Name, fallbackRisk)
	if res.Fallback {
		s.log.Warn("career risk fallback", "user", userID, "role", role, "error", res.Err)
	}

	v := res.Value
	out := &RiskReport{
		TargetRole:        role,
		StabilityScore:    score(v.StabilityScore),
		RiskLevel:         coerceRisk(v.RiskLevel),
		LayoffRisk:        coerceRisk(v.LayoffRisk),
		AutomationRisk:    coerceRisk(v.AutomationRisk),
		CompetitionLevel:  coerceRisk(v.CompetitionLevel),
		Insight:           strings.TrimSpace(v.Insight),
		Mitigation:        nonBlank(v.Mitigation),
		FutureProofingTip: strings.TrimSpace(v.FutureProofingTip),
		Fallback:          res.Fallback,
	}

	s.log.Info("career risk analyzed", "user", userID, "role", role, "risk", out.RiskLevel, "fallback", out.Fallback)
	return out, nil
}

// HiringSignal simulates a recruiter evaluating the user for role.
func (s *Service) HiringSignal(ctx context.Context, userID, role string) (*HiringSignal, error) {
	role, err := s.role(userID, role)
	if err != nil {
		return nil, err
	}
	c, err := s.candidate(ctx, userID)
	if err != nil {
		return nil, err
	}

	req := s.request(hiringSystemPrompt,
		buildRoleMessage(c, role, "Evaluate this candidate as a recruiter hiring for the target role."), HiringSchema)
	res := sanitize.Complete(ctx, s.provider, req, HiringSchema.Name, fallbackHiring)
	if res.Fallback {
		s.log.Warn("hiring signal fallback", "user", userID, "role", role, "error", res.Err)
	}

	v := res.Value
	out := &HiringSignal{
		TargetRole:            role,
		ResumeSignalStrength:  score(v.ResumeSignalStrength),
		SkillMatchScore:       score(v.SkillMatchScore),
		ProjectRelevanceScore: score(v.ProjectRelevanceScore),
		InterviewProbability:  score(v.InterviewProbability),
		Summary:               strings.TrimSpace(v.Summary),
		RecruiterInsight:      strings.TrimSpace(v.RecruiterInsight),
		Strengths:             nonBlank(v.Strengths),
		Weaknesses:            nonBlank(v.Weaknesses),
		ImprovementActions:    nonBlank(v.ImprovementActions),
		Fallback:              res.Fallback,
	}
	out.Verdict = coerceVerdict(v.Verdict, out.InterviewProbability)

	s.log.Info("hiring signal evaluated", "user", userID, "role", role, "verdict", out.Verdict, "fallback", out.Fallback)
	return out, nil
}

// role applies the default role and validates the pair.
func (s *Service) role(userID, role string) (string, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		role = s.cfg.DefaultRole
	}
	if err := s.validate.Struct(roleInput{UserID: userID, Role: role}); err != nil {
		return "", fmt.Errorf("invalid role request: %w", err)
	}
	return role, nil
}

func (s *Service) request(system, user string, schema *llm.Schema) llm.Request {
	return llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: user}},
		Schema:      schema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}
}

// candidate gathers the resume and skill profile context. Either may be
// missing.
func (s *Service) candidate(ctx context.Context, userID string) (candidate, error) {
	r, err := s.resumes.Get(ctx, userID)
	if err != nil {
		return candidate{}, fmt.Errorf("load resume: %w", err)
	}
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return candidate{}, fmt.Errorf("load skill profile: %w", err)
	}

	c := candidate{Level: learningplan.InferLevel(r)}
	if r != nil {
		c.Skills = r.Parsed.TechnicalSkills
		c.Tools = r.Parsed.Tools
		for i, e := range r.Parsed.Experience {
			if i == contextItems {
				break
			}
			line := strings.TrimSpace(e.Title)
			if e.Company != "" {
				line += " at " + e.Company
			}
			if e.Duration != "" {
				line += " (" + e.Duration + ")"
			}
			c.Experience = append(c.Experience, line)
		}
		for i, proj := range r.Parsed.Projects {
			if i == contextItems {
				break
			}
			line := proj.Name
			if len(proj.Technologies) > 0 {
				line += " (" + strings.Join(proj.Technologies, ", ") + ")"
			}
			c.Projects = append(c.Projects, line)
		}
	}
	if p != nil {
		c.ProfileRole = p.TargetRole
		c.Readiness = p.ReadinessScore
		for _, m := range p.MissingSkills {
			c.Missing = append(c.Missing, m.Name)
		}
	}
	return c, nil
}

func score(v float64) int {
	return store.ClampScore(int(math.Round(v)))
}

// coerceWinner maps "A", "Role A" or role A's name to WinnerA, likewise
// for B, and anything else to a tie.
func coerceWinner(v, roleA, roleB string) string {
	switch w := strings.ToLower(strings.TrimSpace(v)); w {
	case "a", "role a", "option a", strings.ToLower(roleA):
		return WinnerA
	case "b", "role b", "option b", strings.ToLower(roleB):
		return WinnerB
	default:
		return WinnerTie
	}
}

// resolveRole maps a verdict to one of the two compared role names,
// defaulting to roleA.
func resolveRole(v, roleA, roleB string) string {
	if coerceWinner(v, roleA, roleB) == WinnerB {
		return roleB
	}
	return roleA
}

func coerceImportance(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "high", "critical":
		return store.ImportanceHigh
	default:
		return store.ImportanceMedium
	}
}

func coerceRisk(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "low":
		return RiskLow
	case "high":
		return RiskHigh
	default:
		return RiskMedium
	}
}

// coerceVerdict normalizes the recruiter verdict. A missing or unknown
// verdict is derived from the interview probability.
func coerceVerdict(v string, interview int) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "shortlisted":
		return VerdictShortlisted
	case "borderline":
		return VerdictBorderline
	case "rejected":
		return VerdictRejected
	}
	switch {
	case interview >= 70:
		return VerdictShortlisted
	case interview >= 40:
		return VerdictBorderline
	default:
		return VerdictRejected
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
