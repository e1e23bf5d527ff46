package judge

import (
	"context"
	"fmt"

	"github.com/unieval-ai/unieval/api"
)

// ScreenOptions configures the safety Screener
type ScreenOptions struct {
	// Threshold is the confidence threshold for flagging content (0.0-1.0)
	Threshold float64
	// Categories to check (empty = all categories)
	Categories []string
}

// ScreenResult is the outcome of screening one piece of content.
type ScreenResult struct {
	Safe      bool               `json:"safe"`
	Flagged   map[string]float64 `json:"flagged,omitempty"`
	Threshold float64            `json:"threshold"`
}

// CaseScreenResult ties a screening outcome to a benchmark case.
type CaseScreenResult struct {
	CaseID string       `json:"case_id"`
	Result ScreenResult `json:"result"`
}

// SafetyScreen returns a Screener that flags benchmark prompts whose
// moderation confidence exceeds the threshold. Screening is diagnostic:
// it never affects scores.
func SafetyScreen(provider api.ModerationProvider, opts ScreenOptions) *Screener {
	return &Screener{provider: provider, opts: opts}
}

// Screener evaluates content safety using a moderation provider.
type Screener struct {
	provider api.ModerationProvider
	opts     ScreenOptions
}

// Screen moderates one piece of content.
func (s *Screener) Screen(ctx context.Context, content string) (ScreenResult, error) {
	if s.provider == nil {
		return ScreenResult{}, api.ErrNoModerationProvider
	}

	resp, err := s.provider.Moderate(ctx, content)
	if err != nil {
		return ScreenResult{}, fmt.Errorf("failed to moderate content: %w", err)
	}

	threshold := s.opts.Threshold
	if threshold <= 0 {
		threshold = 0.5
	}

	result := ScreenResult{
		Safe:      true,
		Flagged:   make(map[string]float64),
		Threshold: threshold,
	}
	for _, category := range resp.Categories {
		if len(s.opts.Categories) > 0 && !contains(s.opts.Categories, category.Name) {
			continue
		}
		if category.Confidence > threshold {
			result.Flagged[category.Name] = category.Confidence
			result.Safe = false
		}
	}
	return result, nil
}

// ScreenCases screens the generation prompt of every case.
func (s *Screener) ScreenCases(ctx context.Context, cases []api.CaseRecord) ([]CaseScreenResult, error) {
	results := make([]CaseScreenResult, 0, len(cases))
	for _, c := range cases {
		r, err := s.Screen(ctx, c.Prompt)
		if err != nil {
			return nil, fmt.Errorf("case %q: %w", c.CaseID, err)
		}
		results = append(results, CaseScreenResult{CaseID: c.CaseID, Result: r})
	}
	return results, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
