package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateResponse(t *testing.T) {
	schema := &Schema{
		Name: "validate-test",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"kind":    map[string]any{"type": "string", "enum": []any{"numeric", "choice", "text"}},
				"answer":  map[string]any{"type": "string"},
				"options": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
			"required": []any{"kind", "answer"},
		},
	}

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"kind":"numeric","answer":"7"}`, false},
		{"valid with options", `{"kind":"choice","answer":"b","options":["a","b"]}`, false},
		{"missing required", `{"kind":"numeric"}`, true},
		{"wrong type", `{"kind":"numeric","answer":7}`, true},
		{"bad enum", `{"kind":"essay","answer":"x"}`, true},
		{"bad item type", `{"kind":"choice","answer":"a","options":[1,2]}`, true},
		{"malformed", `{"kind":`, true},
		{"empty", ``, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(schema, json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not json`)); err != nil {
		t.Fatalf("nil schema should skip validation, got %v", err)
	}
}
