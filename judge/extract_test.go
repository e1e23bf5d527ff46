package judge

import (
	"testing"

	"github.com/unieval-ai/unieval/api"
)

func TestNormalizeLabel(t *testing.T) {
	q := colorQuestion()

	tests := []struct {
		raw  string
		want api.Label
	}{
		{"A", "A"},
		{"a", "A"},
		{" b ", "B"},
		{"(C)", "C"},
		{"B.", "B"},
		{"[A]", "A"},
		{"invalid", api.InvalidResponse},
		{"INVALID", api.InvalidResponse},
		{"", api.InvalidResponse},
		{"F", api.InvalidResponse},
		{"AB", api.InvalidResponse},
		{"the cube is red", api.InvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := NormalizeLabel(tt.raw, q); got != tt.want {
				t.Errorf("NormalizeLabel(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeLabel_PerQuestionAlphabet(t *testing.T) {
	// A question may declare fewer than five options; labels outside its own
	// set are invalid even if another question would accept them.
	twoOption := api.Question{
		ID:           "q",
		Options:      []api.Option{{Label: "A"}, {Label: "B"}},
		CorrectLabel: "A",
	}
	if got := NormalizeLabel("C", twoOption); got != api.InvalidResponse {
		t.Errorf("NormalizeLabel(C) = %q, want INVALID for a two-option question", got)
	}
}

func TestExtractLabel(t *testing.T) {
	q := colorQuestion()

	tests := []struct {
		name     string
		response string
		want     api.Label
	}{
		{"answer phrasing", "The answer is B", "B"},
		{"answer colon", "Answer: C", "C"},
		{"answer parenthesized", "My answer is (a).", "A"},
		{"bare label", "B", "B"},
		{"bare label with punctuation", "(b)", "B"},
		{"answer phrase with bad label", "The answer is Q", api.InvalidResponse},
		{"free text without label", "The cube looks reddish to me", api.InvalidResponse},
		{"empty", "", api.InvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractLabel(tt.response, q); got != tt.want {
				t.Errorf("ExtractLabel(%q) = %q, want %q", tt.response, got, tt.want)
			}
		})
	}
}
