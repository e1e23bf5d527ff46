package gemini

import (
	"testing"

	"google.golang.org/genai"
)

func TestToSchema(t *testing.T) {
	schema := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"answer": map[string]interface{}{
				"type":        "string",
				"enum":        []string{"A", "B", "INVALID"},
				"description": "The selected option label",
			},
			"confidence": map[string]interface{}{
				"type": "number",
			},
		},
		"required": []string{"answer"},
	}

	converted, err := toSchema(schema)
	if err != nil {
		t.Fatalf("toSchema() error: %v", err)
	}

	if converted.Type != genai.TypeObject {
		t.Errorf("Type = %v, want object", converted.Type)
	}
	answer := converted.Properties["answer"]
	if answer == nil {
		t.Fatal("answer property missing")
	}
	if answer.Type != genai.TypeString {
		t.Errorf("answer type = %v, want string", answer.Type)
	}
	if len(answer.Enum) != 3 || answer.Enum[2] != "INVALID" {
		t.Errorf("answer enum = %v", answer.Enum)
	}
	if answer.Description == "" {
		t.Error("answer description dropped")
	}
	if converted.Properties["confidence"].Type != genai.TypeNumber {
		t.Errorf("confidence type = %v, want number", converted.Properties["confidence"].Type)
	}
	if len(converted.Required) != 1 || converted.Required[0] != "answer" {
		t.Errorf("required = %v", converted.Required)
	}
}

func TestToSchema_Errors(t *testing.T) {
	tests := []struct {
		name   string
		schema map[string]interface{}
	}{
		{"missing type", map[string]interface{}{}},
		{"unknown type", map[string]interface{}{"type": "tuple"}},
		{
			"bad property",
			map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{"x": "not a schema"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := toSchema(tt.schema); err == nil {
				t.Error("toSchema() succeeded, want error")
			}
		})
	}
}

func TestStringList(t *testing.T) {
	if got := stringList([]interface{}{"A", "B", 3}); len(got) != 2 {
		t.Errorf("stringList dropped wrong elements: %v", got)
	}
	if got := stringList(nil); got != nil {
		t.Errorf("stringList(nil) = %v, want nil", got)
	}
	if got := stringList([]string{"A"}); len(got) != 1 {
		t.Errorf("stringList([]string) = %v", got)
	}
}
