package career

import "strings"

const (
	unavailable = "AI Service Unavailable."

	fallbackMatchReadiness = 40

	fallbackStability        = 75
	fallbackResumeSignal     = 65
	fallbackSkillMatch       = 70
	fallbackProjectRelevance = 60
	fallbackInterview        = 40
)

func fallbackCompare(roleA string) func() compareOutput {
	return func() compareOutput {
		return compareOutput{
			Comparison: []criterionOutput{},
			Verdict: verdictOutput{
				Role:   roleA,
				Reason: unavailable + " Both are good options.",
			},
		}
	}
}

// fallbackMatch reuses the stored skill profile when it was built for the
// same role.
func fallbackMatch(c candidate, role string) func() matchOutput {
	return func() matchOutput {
		out := matchOutput{
			Confidence:           fallbackMatchReadiness,
			Reason:               unavailable + " Showing an estimate from your saved skill analysis where possible.",
			SkillGaps:            []gapOutput{},
			PrioritySkills:       []string{},
			ReadinessScore:       fallbackMatchReadiness,
			ReadinessExplanation: "Detailed readiness analysis is unavailable right now.",
		}
		if c.ProfileRole != "" && strings.EqualFold(c.ProfileRole, role) {
			out.Confidence = float64(c.Readiness)
			out.ReadinessScore = float64(c.Readiness)
			for _, m := range c.Missing {
				out.SkillGaps = append(out.SkillGaps, gapOutput{Skill: m, Importance: "High"})
			}
			out.PrioritySkills = append(out.PrioritySkills, c.Missing...)
		}
		return out
	}
}

func fallbackRisk() riskOutput {
	return riskOutput{
		StabilityScore:    fallbackStability,
		RiskLevel:         RiskMedium,
		LayoffRisk:        RiskMedium,
		AutomationRisk:    RiskMedium,
		CompetitionLevel:  RiskHigh,
		Insight:           "Service temporarily unavailable. Defaulting to general market trends.",
		Mitigation:        []string{"Continuous Learning", "Networking", "Diversify Skills"},
		FutureProofingTip: "Stay updated with AI trends.",
	}
}

func fallbackHiring() hiringOutput {
	return hiringOutput{
		ResumeSignalStrength:  fallbackResumeSignal,
		SkillMatchScore:       fallbackSkillMatch,
		ProjectRelevanceScore: fallbackProjectRelevance,
		InterviewProbability:  fallbackInterview,
		Summary:               "Evaluation unavailable.",
		RecruiterInsight:      "Unable to process detailed signals. Focus on core skills.",
		Strengths:             []string{},
		Weaknesses:            []string{},
		ImprovementActions:    []string{},
		Verdict:               VerdictBorderline,
	}
}
