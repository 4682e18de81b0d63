// Package tracking records learner activity: quiz outcomes and weekly
// study time.
package tracking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/abhisek/careerpath/internal/logger"
	"github.com/abhisek/careerpath/internal/store"
)

// QuizInput is one finished quiz.
type QuizInput struct {
	UserID     string `json:"-" validate:"required,max=128"`
	Course     string `json:"course" validate:"required,max=200"`
	Score      int    `json:"score" validate:"min=0,max=100"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

// ProgressInput is the study time reported for the last seven days.
type ProgressInput struct {
	UserID       string `json:"-" validate:"required,max=128"`
	StudyMinutes int    `json:"studyMinutesLastWeek" validate:"min=0,max=10080"`
	SpeedLabel   string `json:"speedLabel" validate:"omitempty,oneof=slow average fast"`
}

// Service records quiz results and progress signals.
type Service struct {
	quizzes  store.QuizRepo
	progress store.ProgressRepo
	validate *validator.Validate
	log      *logger.Logger
	now      func() time.Time
}

// NewService creates a tracking service.
func NewService(quizzes store.QuizRepo, progress store.ProgressRepo, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		quizzes:  quizzes,
		progress: progress,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log.With("service", "tracking"),
		now:      time.Now,
	}
}

// RecordQuiz stores a quiz result with a fresh id. Results are never
// updated after they are written.
func (s *Service) RecordQuiz(ctx context.Context, in QuizInput) (*store.QuizResult, error) {
	in.Course = strings.TrimSpace(in.Course)
	in.Difficulty = strings.ToLower(strings.TrimSpace(in.Difficulty))
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid quiz result: %w", err)
	}

	q := &store.QuizResult{
		ID:         uuid.NewString(),
		UserID:     in.UserID,
		Course:     in.Course,
		Score:      in.Score,
		Difficulty: in.Difficulty,
		TakenAt:    s.now().UTC(),
	}
	if err := s.quizzes.Append(ctx, q); err != nil {
		return nil, fmt.Errorf("save quiz result: %w", err)
	}
	s.log.Debug("quiz recorded", "user", in.UserID, "course", in.Course, "score", in.Score)
	return q, nil
}

// Recent returns up to limit quiz results, newest first.
func (s *Service) Recent(ctx context.Context, userID string, limit int) ([]store.QuizResult, error) {
	return s.quizzes.Recent(ctx, userID, limit)
}

// SetProgress replaces the user's progress signal. An empty label keeps
// the previously stored one.
func (s *Service) SetProgress(ctx context.Context, in ProgressInput) (*store.ProgressSignal, error) {
	in.SpeedLabel = strings.ToLower(strings.TrimSpace(in.SpeedLabel))
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid progress: %w", err)
	}

	label := in.SpeedLabel
	if label == "" {
		prev, err := s.progress.Get(ctx, in.UserID)
		if err != nil {
			return nil, fmt.Errorf("load progress: %w", err)
		}
		if prev != nil {
			label = prev.SpeedLabel
		}
	}

	p := &store.ProgressSignal{
		UserID:               in.UserID,
		StudyMinutesLastWeek: in.StudyMinutes,
		SpeedLabel:           label,
		LastActiveAt:         s.now().UTC(),
	}
	if err := s.progress.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}
	s.log.Debug("progress updated", "user", in.UserID, "minutes", in.StudyMinutes)
	return p, nil
}

// Progress returns the stored signal, or nil when none was recorded.
func (s *Service) Progress(ctx context.Context, userID string) (*store.ProgressSignal, error) {
	return s.progress.Get(ctx, userID)
}
