package questiongen

import "github.com/abhisek/dronecbt/internal/llm"

// BatchSchema defines the JSON schema for LLM question generation responses.
var BatchSchema = &llm.Schema{
	Name:        "exam-questions",
	Description: "A batch of three-choice exam questions with answers and explanations",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text, in Japanese, self-contained",
						},
						"options": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"1": map[string]any{"type": "string"},
								"2": map[string]any{"type": "string"},
								"3": map[string]any{"type": "string"},
							},
							"required":             []any{"1", "2", "3"},
							"additionalProperties": false,
							"description":          "Exactly three answer options keyed \"1\", \"2\", \"3\"",
						},
						"answer": map[string]any{
							"type":        "string",
							"enum":        []any{"1", "2", "3"},
							"description": "The key of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Why the correct option is right, in Japanese",
						},
					},
					"required":             []any{"question", "options", "answer", "explanation"},
					"additionalProperties": false,
				},
				"description": "The generated questions",
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
