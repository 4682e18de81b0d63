package skillgap

import "github.com/abhisek/careerpath/internal/llm"

var stringList = map[string]any{"type": "array", "items": map[string]any{"type": "string"}}

// ReportSchema defines the JSON schema for a skill gap analysis.
var ReportSchema = &llm.Schema{
	Name:        "skill-gap",
	Description: "Skill gap analysis of a resume against a target role",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"readinessScore": map[string]any{
				"type":        "number",
				"description": "0-100 readiness for the target role, lowered by critical missing skills",
			},
			"strongSkills": stringList,
			"weakSkills":   stringList,
			"missingSkills": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":        map[string]any{"type": "string"},
						"importance":  map[string]any{"type": "string"},
						"timeToLearn": map[string]any{"type": "string"},
						"reason":      map[string]any{"type": "string"},
						"category":    map[string]any{"type": "string"},
						"learningPlan": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"description": map[string]any{"type": "string"},
								"steps":       stringList,
							},
						},
					},
					"required": []any{"name"},
				},
			},
			"currentSkills": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":  map[string]any{"type": "string"},
						"level": map[string]any{"type": "number"},
					},
					"required": []any{"name", "level"},
				},
			},
			"dependencyGraph": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"skill":         map[string]any{"type": "string"},
						"prerequisites": stringList,
						"unlocks":       stringList,
						"reason":        map[string]any{"type": "string"},
						"topics":        stringList,
						"resources": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"name": map[string]any{"type": "string"},
									"url":  map[string]any{"type": "string"},
								},
							},
						},
					},
					"required": []any{"skill"},
				},
			},
			"aiInsight": map[string]any{"type": "string"},
		},
		"required": []any{"readinessScore", "strongSkills", "missingSkills", "aiInsight"},
	},
}
