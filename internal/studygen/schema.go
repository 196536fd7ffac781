package studygen

import "github.com/abdulsamadj00-tech/Abdul-Samad/internal/llm"

// Every property is required so the schemas work with strict structured
// output. Optional text such as a source citation comes back empty.

// MaterialSchema defines the JSON schema for the learning material response.
var MaterialSchema = &llm.Schema{
	Name:        "study-material",
	Description: "A high-yield summary, key points and mnemonics for a block of study text",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "A concise, high-yield summary for a medical student",
			},
			"keyPoints": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Bulleted list of key facts and concepts",
			},
			"mnemonics": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"concept":  map[string]any{"type": "string"},
						"mnemonic": map[string]any{"type": "string"},
					},
					"required":             []any{"concept", "mnemonic"},
					"additionalProperties": false,
				},
				"description": "Creative and memorable mnemonics for complex topics",
			},
			"source": map[string]any{
				"type":        "string",
				"description": "The likely source for this information (e.g. 'Pathoma Ch. 3'), or empty",
			},
		},
		"required":             []any{"summary", "keyPoints", "mnemonics", "source"},
		"additionalProperties": false,
	},
}

// FlashcardSchema defines the JSON schema for the flashcard set response.
// The card array is wrapped in an object because several backends only
// accept an object at the top level.
var FlashcardSchema = &llm.Schema{
	Name:        "study-flashcards",
	Description: "A set of Anki-style flashcards with optional visual aid prompts",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"cards": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "A clear, high-yield question",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "A concise and accurate answer",
						},
						"visualAidPrompt": map[string]any{
							"type":        "string",
							"description": "Prompt for a visual aid, e.g. 'Labeled diagram of the nephron', or empty",
						},
						"source": map[string]any{
							"type":        "string",
							"description": "Likely source (e.g. 'SketchyMedical', 'UWorld'), or empty",
						},
					},
					"required":             []any{"question", "answer", "visualAidPrompt", "source"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"cards"},
		"additionalProperties": false,
	},
}

// MCQSchema defines the JSON schema for the MCQ set response.
var MCQSchema = &llm.Schema{
	Name:        "study-mcqs",
	Description: "A set of exam-style multiple-choice questions",
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
							"description": "The clinical vignette and question",
						},
						"options": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "The single correct option, copied verbatim from options",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "A brief explanation of why the answer is correct",
						},
						"source": map[string]any{
							"type":        "string",
							"description": "Likely source of the concept (e.g. 'Amboss', 'UWorld'), or empty",
						},
					},
					"required":             []any{"question", "options", "answer", "explanation", "source"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
