package studygen

import "github.com/radarsat1/re-up/internal/llm"

// PlanSchema pins study-plan generation to the expected structure,
// including the 3-7 section constraint.
var PlanSchema = &llm.Schema{
	Name:        "study-plan",
	Description: "A structured interview-prep study plan for one topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic": map[string]any{
				"type":        "string",
				"description": "The main topic of the study plan",
			},
			"summary": map[string]any{
				"type":        "string",
				"description": "A brief, one-paragraph summary of the study plan",
			},
			"sections": map[string]any{
				"type":        "array",
				"description": "Study sections in logical order",
				"minItems":    3,
				"maxItems":    7,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "The title of this section",
						},
						"description": map[string]any{
							"type":        "string",
							"description": "A short description of what this section covers",
						},
						"difficulty": map[string]any{
							"type":        "string",
							"enum":        []any{"Beginner", "Intermediate", "Advanced"},
							"description": "Difficulty level of this section",
						},
					},
					"required": []any{"title", "description", "difficulty"},
				},
			},
		},
		"required": []any{"topic", "summary", "sections"},
	},
}

// QuestionsSchema pins question generation to a fixed batch of five.
var QuestionsSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "A batch of interview questions for one plan section",
	Definition: map[string]any{
		"type":     "array",
		"minItems": QuestionsPerQuiz,
		"maxItems": QuestionsPerQuiz,
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":        "string",
					"description": "The interview question text",
				},
				"topic": map[string]any{
					"type":        "string",
					"description": "The specific topic this question covers",
				},
			},
			"required": []any{"question", "topic"},
		},
	},
}

// GradingSchema pins answer grading to the feedback structure.
var GradingSchema = &llm.Schema{
	Name:        "graded-answer",
	Description: "An evaluation of one free-text answer to an interview question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"grade": map[string]any{
				"type":        "string",
				"description": "A letter grade for the answer (e.g. A+, B, C-)",
			},
			"summary": map[string]any{
				"type":        "string",
				"description": "Concise feedback highlighting strengths and weaknesses",
			},
			"keyConceptsMissed": map[string]any{
				"type":        "array",
				"description": "Key concepts the answer failed to mention or got wrong",
				"items":       map[string]any{"type": "string"},
			},
			"suggestedResearchLinks": map[string]any{
				"type":        "array",
				"description": "Web URLs for further reading on the missed concepts",
				"items":       map[string]any{"type": "string"},
			},
		},
		"required": []any{"grade", "summary", "keyConceptsMissed", "suggestedResearchLinks"},
	},
}
