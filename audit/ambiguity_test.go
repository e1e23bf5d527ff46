package audit

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/unieval-ai/unieval/api"
)

// mockEmbedder returns canned unit vectors per text
type mockEmbedder struct {
	vectors map[string][]float64
	err     error
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.vectors[text]
	if !ok {
		return nil, errors.New("no vector for text: " + text)
	}
	return v, nil
}

func unit(angle float64) []float64 {
	return []float64{math.Cos(angle), math.Sin(angle)}
}

func TestCheckQuestion(t *testing.T) {
	embedder := &mockEmbedder{vectors: map[string][]float64{
		"crimson": unit(0),
		"scarlet": unit(0.1), // nearly identical direction
		"blue":    unit(math.Pi / 2),
	}}

	q := api.Question{
		ID: "q1",
		Options: []api.Option{
			{Label: "A", Text: "crimson"},
			{Label: "B", Text: "scarlet"},
			{Label: "C", Text: "blue"},
		},
		CorrectLabel: "A",
	}

	auditor := DistractorAmbiguity(embedder, AmbiguityOptions{Threshold: 0.95})
	result, err := auditor.CheckQuestion(context.Background(), q)
	if err != nil {
		t.Fatalf("CheckQuestion() error: %v", err)
	}

	if len(result.Ambiguous) != 1 {
		t.Fatalf("got %d ambiguous pairs, want 1: %+v", len(result.Ambiguous), result.Ambiguous)
	}
	if result.Ambiguous[0].Label != "B" {
		t.Errorf("flagged label = %s, want B", result.Ambiguous[0].Label)
	}
	if result.Ambiguous[0].Similarity < 0.95 {
		t.Errorf("similarity = %v, want >= 0.95", result.Ambiguous[0].Similarity)
	}
}

func TestCheckQuestion_Errors(t *testing.T) {
	q := api.Question{
		ID:           "q1",
		Options:      []api.Option{{Label: "A", Text: "red"}, {Label: "B", Text: "blue"}},
		CorrectLabel: "A",
	}

	t.Run("nil embedder", func(t *testing.T) {
		auditor := DistractorAmbiguity(nil, AmbiguityOptions{})
		if _, err := auditor.CheckQuestion(context.Background(), q); !errors.Is(err, api.ErrNoEmbedder) {
			t.Errorf("CheckQuestion() error = %v, want ErrNoEmbedder", err)
		}
	})

	t.Run("embedder failure", func(t *testing.T) {
		auditor := DistractorAmbiguity(&mockEmbedder{err: errors.New("down")}, AmbiguityOptions{})
		if _, err := auditor.CheckQuestion(context.Background(), q); err == nil {
			t.Error("CheckQuestion() succeeded, want error")
		}
	})

	t.Run("correct label without option", func(t *testing.T) {
		bad := api.Question{ID: "q2", Options: []api.Option{{Label: "A", Text: "red"}}, CorrectLabel: "Z"}
		auditor := DistractorAmbiguity(&mockEmbedder{}, AmbiguityOptions{})
		if _, err := auditor.CheckQuestion(context.Background(), bad); err == nil {
			t.Error("CheckQuestion() succeeded, want error")
		}
	})
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 0}, []float64{1, 0}, 1.0},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1.0},
		{"length mismatch", []float64{1, 0}, []float64{1}, 0.0},
		{"zero vector", []float64{0, 0}, []float64{1, 0}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cosineSimilarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("cosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}
