package career

import "github.com/abhisek/careerpath/internal/llm"

var (
	str        = map[string]any{"type": "string"}
	num        = map[string]any{"type": "number"}
	stringList = map[string]any{"type": "array", "items": str}
)

// CompareSchema defines the JSON schema for a two-role trade-off analysis.
var CompareSchema = &llm.Schema{
	Name:        "role-compare",
	Description: "Trade-off analysis between two career paths for one candidate",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"comparison": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"criteria": str,
						"roleA":    str,
						"roleB":    str,
						"winner":   map[string]any{"type": "string", "description": "A, B or Tie"},
						"insight":  str,
					},
					"required": []any{"criteria", "winner"},
				},
			},
			"verdict": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"role":     map[string]any{"type": "string", "description": "The recommended role, A or B"},
					"reason":   str,
					"tradeOff": str,
				},
				"required": []any{"role", "reason"},
			},
		},
		"required": []any{"comparison", "verdict"},
	},
}

// MatchSchema defines the JSON schema for a candidate-role fit assessment.
var MatchSchema = &llm.Schema{
	Name:        "role-match",
	Description: "How well a candidate fits a target role",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"confidence": map[string]any{"type": "number", "description": "0-100 fit confidence"},
			"reason":     str,
			"skillGaps": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"skill":      str,
						"importance": str,
					},
					"required": []any{"skill"},
				},
			},
			"prioritySkills":       stringList,
			"readinessScore":       map[string]any{"type": "number", "description": "0-100 readiness"},
			"readinessExplanation": str,
		},
		"required": []any{"confidence", "reason", "readinessScore"},
	},
}

// RiskSchema defines the JSON schema for a career risk and stability report.
var RiskSchema = &llm.Schema{
	Name:        "career-risk",
	Description: "Long-term risk and stability of a career path",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"stabilityScore":    map[string]any{"type": "number", "description": "0-100 stability"},
			"riskLevel":         str,
			"layoffRisk":        str,
			"automationRisk":    str,
			"competitionLevel":  str,
			"insight":           str,
			"mitigation":        stringList,
			"futureProofingTip": str,
		},
		"required": []any{"stabilityScore", "riskLevel", "insight"},
	},
}

// HiringSchema defines the JSON schema for a simulated recruiter evaluation.
var HiringSchema = &llm.Schema{
	Name:        "hiring-signal",
	Description: "Recruiter evaluation of a candidate for a target role",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"resumeSignalStrength":  num,
			"skillMatchScore":       num,
			"projectRelevanceScore": num,
			"interviewProbability":  num,
			"summary":               str,
			"recruiterInsight":      str,
			"strengths":             stringList,
			"weaknesses":            stringList,
			"improvementActions":    stringList,
			"verdict":               map[string]any{"type": "string", "description": "Shortlisted, Borderline or Rejected"},
		},
		"required": []any{"resumeSignalStrength", "skillMatchScore", "projectRelevanceScore", "interviewProbability", "summary"},
	},
}
