// Package resume ingests parsed resume facets: it normalizes skill names,
// scores the resume with a basic ATS heuristic, and stores the result.
package resume

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/careerpath/internal/logger"
	"github.com/abhisek/careerpath/internal/store"
)

// ErrEmptyResume is returned when an import carries neither raw text nor
// any parsed facet.
var ErrEmptyResume = errors.New("resume has no content")

// ImportInput is a resume produced by an external ingestion step.
type ImportInput struct {
	UserID  string             `json:"userId" validate:"required,max=128"`
	RawText string             `json:"rawText" validate:"max=200000"`
	Parsed  store.ResumeFacets `json:"parsed"`
}

// Service imports and reads resumes.
type Service struct {
	repo     store.ResumeRepo
	validate *validator.Validate
	log      *logger.Logger
	now      func() time.Time
}

// NewService creates a resume service.
func NewService(repo store.ResumeRepo, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:     repo,
		validate: validator.New(),
		log:      log.With("service", "resume"),
		now:      time.Now,
	}
}

// Import normalizes the facets, computes the ATS assessment, and upserts
// the user's resume.
func (s *Service) Import(ctx context.Context, in ImportInput) (*store.Resume, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("invalid resume: %w", err)
	}
	if in.RawText == "" && isEmpty(in.Parsed) {
		return nil, ErrEmptyResume
	}

	facets := in.Parsed
	facets.TechnicalSkills = NormalizeSkills(facets.TechnicalSkills)
	facets.Tools = NormalizeSkills(facets.Tools)
	for i := range facets.Projects {
		facets.Projects[i].Technologies = NormalizeSkills(facets.Projects[i].Technologies)
	}

	r := &store.Resume{
		UserID:    in.UserID,
		RawText:   in.RawText,
		Parsed:    facets,
		ATS:       Assess(in.RawText, facets),
		UpdatedAt: s.now(),
	}
	if err := s.repo.Save(ctx, r); err != nil {
		return nil, fmt.Errorf("save resume: %w", err)
	}

	s.log.Info("resume imported",
		"user", in.UserID,
		"skills", len(facets.TechnicalSkills),
		"ats_score", r.ATS.Score,
	)
	return r, nil
}

// Get returns the user's resume, or nil when none was imported.
func (s *Service) Get(ctx context.Context, userID string) (*store.Resume, error) {
	r, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load resume: %w", err)
	}
	return r, nil
}

func isEmpty(f store.ResumeFacets) bool {
	return len(f.TechnicalSkills) == 0 &&
		len(f.SoftSkills) == 0 &&
		len(f.Tools) == 0 &&
		len(f.Experience) == 0 &&
		len(f.Projects) == 0 &&
		len(f.Education) == 0 &&
		len(f.Certifications) == 0
}
