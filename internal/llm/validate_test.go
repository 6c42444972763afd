package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "graded-answer-test",
		Description: "Test schema shaped like a grading response",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"grade":   map[string]any{"type": "string"},
				"summary": map[string]any{"type": "string"},
				"keyConceptsMissed": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required": []any{"grade", "summary"},
		},
	}
}

func TestValidateResponseValid(t *testing.T) {
	raw := json.RawMessage(`{"grade":"B+","summary":"solid","keyConceptsMissed":["GC"]}`)
	if err := validateResponse(testSchema(), raw); err != nil {
		t.Fatalf("expected valid, got: %v", err)
	}
}

func TestValidateResponseOptionalOmitted(t *testing.T) {
	raw := json.RawMessage(`{"grade":"A","summary":"good"}`)
	if err := validateResponse(testSchema(), raw); err != nil {
		t.Fatalf("expected valid, got: %v", err)
	}
}

func TestValidateResponseMissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"grade":"A"}`)
	err := validateResponse(testSchema(), raw)
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %v", err)
	}
}

func TestValidateResponseWrongType(t *testing.T) {
	raw := json.RawMessage(`{"grade":"A","summary":"ok","keyConceptsMissed":"not-an-array"}`)
	err := validateResponse(testSchema(), raw)
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %v", err)
	}
}

func TestValidateResponseMalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{broken`)
	err := validateResponse(testSchema(), raw)
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %v", err)
	}
}

func TestValidateResponseNilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("nil schema must not validate, got: %v", err)
	}
}
