// Package adaptive re-tunes a user's learning path from recent quiz scores
// and study time.
package adaptive

import (
	"context"
	"fmt"

	"github.com/abhisek/careerpath/internal/learningplan"
	"github.com/abhisek/careerpath/internal/logger"
	"github.com/abhisek/careerpath/internal/store"
)

// RecentQuizLimit is how many of the newest quiz results are averaged.
const RecentQuizLimit = 20

// Score thresholds. An average below EasyBelow lowers difficulty and skill
// levels; above HardAbove raises them.
const (
	EasyBelow = 60.0
	HardAbove = 90.0

	RaiseDelta = 10
	LowerDelta = -5
)

// Weekly study minutes that override the stored speed label.
const (
	SlowBelowMinutes = 120
	FastAboveMinutes = 600
)

// Difficulty levels.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Planner regenerates a learning path from a supplied profile.
type Planner interface {
	GenerateFor(ctx context.Context, userID string, profile *store.SkillProfile, hints learningplan.Hints) (*store.LearningPath, error)
}

// Result is the outcome of one recalculation.
type Result struct {
	Plan        *store.LearningPath `json:"plan"`
	Difficulty  string              `json:"difficulty"`
	SpeedLabel  string              `json:"speedLabel"`
	AvgScore    float64             `json:"avgScore"`
	Delta       int                 `json:"delta"`
	Regenerated bool                `json:"regenerated"`
}

// Engine runs adaptive recalculations.
type Engine struct {
	quizzes  store.QuizRepo
	progress store.ProgressRepo
	profiles store.SkillProfileRepo
	paths    store.LearningPathRepo
	planner  Planner
	log      *logger.Logger
}

// NewEngine creates an adaptive recalculation engine.
func NewEngine(quizzes store.QuizRepo, progress store.ProgressRepo, profiles store.SkillProfileRepo,
	paths store.LearningPathRepo, planner Planner, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{
		quizzes:  quizzes,
		progress: progress,
		profiles: profiles,
		paths:    paths,
		planner:  planner,
		log:      log.With("service", "adaptive"),
	}
}

// Recalculate derives difficulty, speed and a uniform skill delta from the
// user's recent activity. When a skill profile exists, the learning path is
// regenerated from a perturbed copy of it; the stored profile is left
// untouched so repeated calls do not compound. Without a profile the stored
// plan, possibly nil, is returned unchanged.
func (e *Engine) Recalculate(ctx context.Context, userID string) (*Result, error) {
	quizzes, err := e.quizzes.Recent(ctx, userID, RecentQuizLimit)
	if err != nil {
		return nil, fmt.Errorf("load quiz history: %w", err)
	}
	progress, err := e.progress.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	profile, err := e.profiles.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load skill profile: %w", err)
	}

	avg := AverageScore(quizzes)
	res := &Result{
		Difficulty: Difficulty(avg),
		SpeedLabel: SpeedLabel(progress),
		AvgScore:   avg,
		Delta:      Delta(avg),
	}

	if profile == nil {
		plan, err := e.paths.Get(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("load learning path: %w", err)
		}
		res.Plan = plan
		e.log.Info("recalculated without profile", "user", userID, "difficulty", res.Difficulty)
		return res, nil
	}

	hints := learningplan.Hints{Difficulty: res.Difficulty, Pace: res.SpeedLabel}
	plan, err := e.planner.GenerateFor(ctx, userID, Perturb(profile, res.Delta), hints)
	if err != nil {
		return nil, fmt.Errorf("regenerate learning path: %w", err)
	}
	res.Plan = plan
	res.Regenerated = true

	e.log.Info("learning path recalculated",
		"user", userID,
		"quizzes", len(quizzes),
		"avg_score", avg,
		"difficulty", res.Difficulty,
		"speed", res.SpeedLabel,
		"delta", res.Delta,
	)
	return res, nil
}

// AverageScore is the mean quiz score, or 0 with no results.
func AverageScore(results []store.QuizResult) float64 {
	if len(results) == 0 {
		return 0
	}
	total := 0
	for _, q := range results {
		total += q.Score
	}
	return float64(total) / float64(len(results))
}

// Difficulty maps an average score to a difficulty level.
func Difficulty(avg float64) string {
	switch {
	case avg < EasyBelow:
		return DifficultyEasy
	case avg > HardAbove:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// Delta is the uniform skill level adjustment for an average score.
func Delta(avg float64) int {
	switch {
	case avg > HardAbove:
		return RaiseDelta
	case avg < EasyBelow:
		return LowerDelta
	default:
		return 0
	}
}

// SpeedLabel classifies weekly study time. Without a progress signal the
// default label applies.
func SpeedLabel(p *store.ProgressSignal) string {
	if p == nil {
		return store.SpeedAverage
	}
	switch {
	case p.StudyMinutesLastWeek < SlowBelowMinutes:
		return store.SpeedSlow
	case p.StudyMinutesLastWeek > FastAboveMinutes:
		return store.SpeedFast
	case p.SpeedLabel != "":
		return p.SpeedLabel
	default:
		return store.SpeedAverage
	}
}

// Perturb returns a copy of profile with delta added to every current skill
// level, clamped to [0, 100].
func Perturb(profile *store.SkillProfile, delta int) *store.SkillProfile {
	cp := profile.Clone()
	for i := range cp.CurrentSkills {
		cp.CurrentSkills[i].Level = store.ClampScore(cp.CurrentSkills[i].Level + delta)
	}
	return cp
}
