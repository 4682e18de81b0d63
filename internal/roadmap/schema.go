package roadmap

import "github.com/abhisek/careerpath/internal/llm"

var stringList = map[string]any{"type": "array", "items": map[string]any{"type": "string"}}

// RoadmapSchema defines the JSON schema for a career roadmap.
var RoadmapSchema = &llm.Schema{
	Name:        "career-roadmap",
	Description: "Month-by-month roadmap toward one target role",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"targetRole": map[string]any{"type": "string"},
			"currentLevel": map[string]any{
				"type":        "string",
				"description": "beginner, intermediate or advanced",
			},
			"timeline": map[string]any{
				"type":        "string",
				"description": "3 months, 6 months or 12 months",
			},
			"milestones": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"month":       map[string]any{"type": "integer"},
						"title":       map[string]any{"type": "string"},
						"skills":      stringList,
						"projects":    stringList,
						"resources":   stringList,
						"checkpoints": stringList,
					},
					"required": []any{"month", "title"},
				},
			},
			"skillGaps":                 stringList,
			"recommendedCourses":        stringList,
			"internshipRecommendations": stringList,
			"readinessScore":            map[string]any{"type": "number"},
			"nextSteps":                 stringList,
		},
		"required": []any{"milestones", "readinessScore"},
	},
}
