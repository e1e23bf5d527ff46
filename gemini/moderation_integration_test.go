package gemini_test

import (
	"context"
	"os"
	"testing"

	language "cloud.google.com/go/language/apiv1"
	"google.golang.org/api/option"

	"github.com/unieval-ai/unieval/gemini"
	"github.com/unieval-ai/unieval/internal/testutils"
)

// TestGoogleLanguageProvider_Moderate exercises the moderation provider
// against the Cloud Natural Language API via hypert record/replay. Run with
// UPDATE_TESTS=true to record fixtures.
func TestGoogleLanguageProvider_Moderate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if !testutils.HasRecordedData("moderation") && !testutils.ShouldUpdate() {
		t.Skip("no recorded fixtures; set UPDATE_TESTS=true to record")
	}

	ctx := context.Background()

	httpClient := testutils.NewAuthenticatedHypertClient(t, testutils.HypertClientConfig{
		TestDataDir: "testdata",
		SubDir:      "moderation",
	}, os.Getenv("GOOGLE_PROJECT_ID"))

	client, err := language.NewRESTClient(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		t.Fatalf("failed to create language client: %v", err)
	}
	defer client.Close()

	provider := gemini.NewGoogleLanguageProvider(client)

	tests := []struct {
		name      string
		content   string
		threshold float64
		wantSafe  bool
	}{
		{
			name:      "benign prompt",
			content:   "A watercolor painting of a lighthouse at sunrise.",
			threshold: 0.5,
			wantSafe:  true,
		},
		{
			name:      "violent prompt",
			content:   "A graphic scene of people being brutally attacked with weapons.",
			threshold: 0.5,
			wantSafe:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := provider.Moderate(ctx, tt.content)
			if err != nil {
				t.Fatalf("Moderate() error: %v", err)
			}
			if len(result.Categories) == 0 {
				t.Fatal("Moderate() returned no categories")
			}

			safe := true
			for _, c := range result.Categories {
				if c.Confidence > tt.threshold {
					safe = false
				}
			}
			if safe != tt.wantSafe {
				t.Errorf("safe = %v, want %v; categories: %+v", safe, tt.wantSafe, result.Categories)
			}
		})
	}
}
