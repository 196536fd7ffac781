package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func cardSchema() *Schema {
	return &Schema{
		Name:        "test-card",
		Description: "A flashcard",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question":    map[string]any{"type": "string"},
				"answer":      map[string]any{"type": "string"},
				"reviewCount": map[string]any{"type": "integer", "minimum": 0},
				"performance": map[string]any{"type": "string", "enum": []any{"new", "hard", "good", "easy"}},
			},
			"required": []any{"question", "answer"},
		},
	}
}

func requireInvalid(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"all fields", `{"question":"Most common cause of MI?","answer":"Atherosclerosis","reviewCount":0,"performance":"new"}`},
		{"required only", `{"question":"Q","answer":"A"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateResponse(cardSchema(), json.RawMessage(tt.raw)); err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
		})
	}
}

func TestValidateResponse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing required", `{"question":"Q"}`},
		{"wrong type", `{"question":"Q","answer":"A","reviewCount":"one"}`},
		{"bad enum", `{"question":"Q","answer":"A","performance":"meh"}`},
		{"below minimum", `{"question":"Q","answer":"A","reviewCount":-1}`},
		{"malformed", `{not json}`},
		{"empty", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireInvalid(t, validateResponse(cardSchema(), json.RawMessage(tt.raw)))
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`plain tutor reply`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidateResponse_NestedArrays(t *testing.T) {
	schema := &Schema{
		Name: "test-material",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"keyPoints": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
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
				},
			},
			"required": []any{"keyPoints", "mnemonics"},
		},
	}

	valid := json.RawMessage(`{"keyPoints":["a","b"],"mnemonics":[{"concept":"Cranial nerves","mnemonic":"Oh Oh Oh"}]}`)
	if err := validateResponse(schema, valid); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	requireInvalid(t, validateResponse(schema, json.RawMessage(`{"keyPoints":[1,2],"mnemonics":[]}`)))
	requireInvalid(t, validateResponse(schema, json.RawMessage(`{"keyPoints":[],"mnemonics":[{"concept":"c","mnemonic":"m","extra":1}]}`)))
}
