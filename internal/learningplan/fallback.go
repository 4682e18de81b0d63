package learningplan

func fallbackPlan() planOutput {
	return planOutput{
		LearningPath: []unitOutput{{
			Week:     "Week 1",
			Theme:    "Recovery",
			Topics:   []string{"Gap Analysis Retry"},
			Reason:   "AI Generation Temporary Failure",
			Projects: []string{"Re-upload Resume"},
			Practice: []string{"Check Connection"},
			Quizzes:  []string{},
		}},
		EstimatedCompletionTime: "Unknown",
		ConfidenceLevel:         ConfidenceLow,
	}
}
