package learningplan

import "github.com/abhisek/careerpath/internal/llm"

var stringList = map[string]any{"type": "array", "items": map[string]any{"type": "string"}}

// PlanSchema defines the JSON schema for a weekly learning plan.
var PlanSchema = &llm.Schema{
	Name:        "learning-plan",
	Description: "Weekly curriculum that closes a learner's skill gaps",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"learningPath": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"week": map[string]any{
							"type":        "string",
							"description": "Unit label, e.g. \"Week 1\"",
						},
						"theme":    map[string]any{"type": "string"},
						"topics":   stringList,
						"reason":   map[string]any{"type": "string"},
						"projects": stringList,
						"practice": stringList,
						"quizzes":  stringList,
						"outcome":  map[string]any{"type": "string"},
					},
				},
			},
			"skillLevels": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "number"},
			},
			"estimatedCompletionTime": map[string]any{"type": "string"},
			"confidenceLevel":         map[string]any{"type": "string"},
		},
		"required": []any{"learningPath"},
	},
}
