package skillgap

import "github.com/abhisek/careerpath/internal/store"

const (
	fallbackReadiness = 40
	fallbackInsight   = "We could not analyze your resume right now. Check that your resume was imported correctly and try again."
)

// seedMissingSkill stands in when no missing skill could be determined.
func seedMissingSkill() store.MissingSkill {
	return store.MissingSkill{
		Name:        "Retry Analysis",
		Importance:  store.ImportanceHigh,
		TimeToLearn: "Immediate",
		Reason:      "AI Service Interruption",
		Category:    "System",
		LearningPlan: store.LearningStub{
			Description: "Please try again later.",
			Steps:       []string{},
		},
	}
}

func fallbackReport() report {
	return report{
		ReadinessScore:  fallbackReadiness,
		StrongSkills:    []string{"Assessment Failed"},
		WeakSkills:      []string{},
		MissingSkills:   []store.MissingSkill{seedMissingSkill()},
		CurrentSkills:   []reportSkillLevel{},
		DependencyGraph: []store.SkillDependency{},
		AIInsight:       fallbackInsight,
	}
}
