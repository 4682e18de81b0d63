package learningplan

import "github.com/abhisek/careerpath/internal/store"

// Experience levels adjust the depth and pace of the curriculum.
const (
	LevelStudent      = "Student"
	LevelFresher      = "Fresher"
	LevelProfessional = "Professional"
)

// Hints personalize a learning plan beyond the skill profile.
type Hints struct {
	// ExperienceLevel is one of the Level constants. Inferred from the
	// resume when empty.
	ExperienceLevel string `json:"experienceLevel" validate:"omitempty,oneof=Student Fresher Professional"`

	// Industry, when set, steers examples and projects toward a domain.
	Industry string `json:"industry" validate:"max=100"`

	// Difficulty and Pace carry observed quiz and study performance into
	// a regenerated plan. Both are empty for a first plan.
	Difficulty string `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
	Pace       string `json:"pace,omitempty" validate:"omitempty,oneof=slow average fast"`
}

// InferLevel derives an experience level from the number of experience
// entries on the resume. A nil resume counts as a student.
func InferLevel(r *store.Resume) string {
	if r == nil {
		return LevelStudent
	}
	switch n := len(r.Parsed.Experience); {
	case n == 0:
		return LevelStudent
	case n == 1:
		return LevelFresher
	default:
		return LevelProfessional
	}
}
