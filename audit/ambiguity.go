// Package audit provides benchmark-quality diagnostics. Its checks never
// influence scoring; they exist to surface questions that would measure noise
// rather than understanding.
package audit

import (
	"context"
	"fmt"
	"math"

	"github.com/unieval-ai/unieval/api"
)

// AmbiguityOptions configures the distractor ambiguity check
type AmbiguityOptions struct {
	// Threshold is the cosine similarity above which a distractor is
	// considered too close to the correct option. Defaults to 0.9.
	Threshold float64
}

// AmbiguousPair is a distractor flagged as semantically too close to the
// correct option.
type AmbiguousPair struct {
	Label      api.Label `json:"label"`
	Text       string    `json:"text"`
	Similarity float64   `json:"similarity"`
}

// QuestionAudit is the diagnostic result for one question.
type QuestionAudit struct {
	QuestionID string          `json:"question_id"`
	Ambiguous  []AmbiguousPair `json:"ambiguous,omitempty"`
}

// DistractorAmbiguity returns an auditor that embeds each question's options
// and flags distractors whose similarity to the correct option exceeds the
// threshold.
func DistractorAmbiguity(embedder api.Embedder, opts AmbiguityOptions) *Auditor {
	return &Auditor{embedder: embedder, opts: opts}
}

// Auditor runs embedding-based diagnostics over benchmark questions.
type Auditor struct {
	embedder api.Embedder
	opts     AmbiguityOptions
}

// CheckQuestion audits one question.
func (a *Auditor) CheckQuestion(ctx context.Context, q api.Question) (QuestionAudit, error) {
	result := QuestionAudit{QuestionID: q.ID}

	if a.embedder == nil {
		return result, api.ErrNoEmbedder
	}

	var correctText string
	for _, opt := range q.Options {
		if opt.Label == q.CorrectLabel {
			correctText = opt.Text
		}
	}
	if correctText == "" {
		return result, fmt.Errorf("question %q: correct label %q has no option text", q.ID, q.CorrectLabel)
	}

	correctEmbed, err := a.embedder.Embed(ctx, correctText)
	if err != nil {
		return result, fmt.Errorf("failed to embed correct option: %w", err)
	}

	threshold := a.opts.Threshold
	if threshold <= 0 {
		threshold = 0.9
	}

	for _, opt := range q.Options {
		if opt.Label == q.CorrectLabel {
			continue
		}
		distractorEmbed, err := a.embedder.Embed(ctx, opt.Text)
		if err != nil {
			return result, fmt.Errorf("failed to embed option %s: %w", opt.Label, err)
		}
		similarity := cosineSimilarity(correctEmbed, distractorEmbed)
		if similarity >= threshold {
			result.Ambiguous = append(result.Ambiguous, AmbiguousPair{
				Label:      opt.Label,
				Text:       opt.Text,
				Similarity: similarity,
			})
		}
	}
	return result, nil
}

// CheckCase audits every question of a case.
func (a *Auditor) CheckCase(ctx context.Context, c api.CaseRecord) ([]QuestionAudit, error) {
	audits := make([]QuestionAudit, 0, len(c.Questions))
	for _, q := range c.Questions {
		qa, err := a.CheckQuestion(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("case %q: %w", c.CaseID, err)
		}
		audits = append(audits, qa)
	}
	return audits, nil
}

// cosineSimilarity computes the cosine similarity between two vectors
// Returns a value between -1 and 1, where 1 means identical direction
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	normA = math.Sqrt(normA)
	normB = math.Sqrt(normB)

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (normA * normB)
}
