package judge

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/unieval-ai/unieval/api"
)

// mockModerationProvider is a simple mock for unit tests
type mockModerationProvider struct {
	result *api.ModerationResult
	err    error
}

func (m *mockModerationProvider) Moderate(ctx context.Context, content string) (*api.ModerationResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func TestScreen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		mockResult  *api.ModerationResult
		mockErr     error
		opts        ScreenOptions
		wantErr     bool
		wantSafe    bool
		wantFlagged map[string]float64
	}{
		{
			name: "safe content",
			mockResult: &api.ModerationResult{
				Categories: []api.ModerationCategory{
					{Name: "Toxic", Confidence: 0.1},
					{Name: "Violent", Confidence: 0.05},
				},
			},
			opts:        ScreenOptions{Threshold: 0.5},
			wantSafe:    true,
			wantFlagged: map[string]float64{},
		},
		{
			name: "unsafe content flagged",
			mockResult: &api.ModerationResult{
				Categories: []api.ModerationCategory{
					{Name: "Toxic", Confidence: 0.9},
					{Name: "Violent", Confidence: 0.2},
				},
			},
			opts:        ScreenOptions{Threshold: 0.5},
			wantSafe:    false,
			wantFlagged: map[string]float64{"Toxic": 0.9},
		},
		{
			name: "category filter excludes flag",
			mockResult: &api.ModerationResult{
				Categories: []api.ModerationCategory{
					{Name: "Toxic", Confidence: 0.9},
					{Name: "Finance", Confidence: 0.8},
				},
			},
			opts:        ScreenOptions{Threshold: 0.5, Categories: []string{"Finance"}},
			wantSafe:    false,
			wantFlagged: map[string]float64{"Finance": 0.8},
		},
		{
			name: "zero threshold defaults to 0.5",
			mockResult: &api.ModerationResult{
				Categories: []api.ModerationCategory{
					{Name: "Toxic", Confidence: 0.4},
				},
			},
			opts:        ScreenOptions{},
			wantSafe:    true,
			wantFlagged: map[string]float64{},
		},
		{
			name:    "provider error",
			mockErr: errors.New("api unavailable"),
			opts:    ScreenOptions{Threshold: 0.5},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			screener := SafetyScreen(&mockModerationProvider{result: tt.mockResult, err: tt.mockErr}, tt.opts)
			result, err := screener.Screen(ctx, "a prompt")

			if tt.wantErr {
				if err == nil {
					t.Fatal("Screen() succeeded, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Screen() error: %v", err)
			}
			if result.Safe != tt.wantSafe {
				t.Errorf("Safe = %v, want %v", result.Safe, tt.wantSafe)
			}
			if diff := cmp.Diff(tt.wantFlagged, result.Flagged); diff != "" {
				t.Errorf("Flagged mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScreen_NilProvider(t *testing.T) {
	screener := SafetyScreen(nil, ScreenOptions{})
	if _, err := screener.Screen(context.Background(), "content"); !errors.Is(err, api.ErrNoModerationProvider) {
		t.Errorf("Screen() error = %v, want ErrNoModerationProvider", err)
	}
}

func TestScreenCases(t *testing.T) {
	provider := &mockModerationProvider{
		result: &api.ModerationResult{
			Categories: []api.ModerationCategory{{Name: "Toxic", Confidence: 0.1}},
		},
	}
	screener := SafetyScreen(provider, ScreenOptions{Threshold: 0.5})

	cases := []api.CaseRecord{
		{CaseID: "c1", Prompt: "a red cube"},
		{CaseID: "c2", Prompt: "a blue sphere"},
	}
	results, err := screener.ScreenCases(context.Background(), cases)
	if err != nil {
		t.Fatalf("ScreenCases() error: %v", err)
	}
	if len(results) != 2 || results[0].CaseID != "c1" || results[1].CaseID != "c2" {
		t.Errorf("ScreenCases() = %+v", results)
	}
}
