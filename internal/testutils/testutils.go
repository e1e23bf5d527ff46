// Package testutils provides hypert-backed HTTP record/replay clients for
// integration tests against Vertex AI and the Cloud Natural Language API.
package testutils

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/areknoster/hypert"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/genai"

	"github.com/unieval-ai/unieval/gemini"
)

// ShouldUpdate returns true if tests should update cached HTTP responses
// Set UPDATE_TESTS=true environment variable to update cached responses
func ShouldUpdate() bool {
	return os.Getenv("UPDATE_TESTS") == "true"
}

// HasRecordedData reports whether replay fixtures exist for the given
// testdata subdirectory. Integration tests skip when neither fixtures nor
// record mode are available.
func HasRecordedData(subDir string) bool {
	entries, err := os.ReadDir(filepath.Join("testdata", subDir))
	return err == nil && len(entries) > 0
}

// HypertClientConfig configures hypert client creation
type HypertClientConfig struct {
	TestDataDir string
	SubDir      string // Optional subdirectory for organizing test data
}

// NewHypertClient creates a new hypert client for caching HTTP requests
// This is useful for integration tests that make external API calls
func NewHypertClient(t *testing.T, config HypertClientConfig) *http.Client {
	testDataDir := config.TestDataDir
	if config.SubDir != "" {
		testDataDir = filepath.Join(testDataDir, config.SubDir)
	}

	namingScheme, err := hypert.NewContentHashNamingScheme(testDataDir)
	if err != nil {
		t.Fatalf("failed to create naming scheme: %v", err)
	}

	hypertClient := hypert.TestClient(t, ShouldUpdate(),
		hypert.WithNamingScheme(namingScheme),
		hypert.WithRequestValidator(hypert.ComposedRequestValidator(
			hypert.PathValidator(),
			hypert.QueryParamsValidator(),
			hypert.MethodValidator(),
		)),
	)

	// In record mode the real API is called, so wrap with OAuth2.
	if ShouldUpdate() {
		ctx := context.Background()
		creds, err := google.FindDefaultCredentials(ctx)
		if err != nil {
			t.Fatalf("failed to get default credentials: %v", err)
		}
		return oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, hypertClient), creds.TokenSource)
	}

	return hypertClient
}

// quotaProjectTransport wraps an http.RoundTripper to add quota project header
type quotaProjectTransport struct {
	base      http.RoundTripper
	projectID string
}

func (t *quotaProjectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("X-Goog-User-Project", t.projectID)
	return t.base.RoundTrip(req)
}

// NewAuthenticatedHypertClient creates a hypert client with OAuth2
// authentication and a quota project header, as required by the Cloud
// Natural Language moderation endpoint.
func NewAuthenticatedHypertClient(t *testing.T, config HypertClientConfig, projectID string) *http.Client {
	hypertClient := NewHypertClient(t, config)
	if !ShouldUpdate() {
		return hypertClient
	}
	return &http.Client{
		Transport: &quotaProjectTransport{
			base:      hypertClient.Transport,
			projectID: projectID,
		},
		Timeout: hypertClient.Timeout,
	}
}

// GeminiTestConfig configures Gemini client creation for tests
type GeminiTestConfig struct {
	Project  string
	Location string
	SubDir   string // Subdirectory for hypert test data
}

// DefaultGeminiTestConfig returns a default configuration for Gemini testing
func DefaultGeminiTestConfig(subDir string) GeminiTestConfig {
	return GeminiTestConfig{
		Project:  os.Getenv("GOOGLE_PROJECT_ID"),
		Location: os.Getenv("GOOGLE_REGION"),
		SubDir:   subDir,
	}
}

// NewGeminiClient creates a new Gemini client for testing with hypert caching
func NewGeminiClient(t *testing.T, config GeminiTestConfig) *genai.Client {
	ctx := context.Background()

	hypertClient := NewHypertClient(t, HypertClientConfig{
		TestDataDir: "testdata",
		SubDir:      config.SubDir,
	})

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:    genai.BackendVertexAI,
		Project:    config.Project,
		Location:   config.Location,
		HTTPClient: hypertClient,
	})
	if err != nil {
		t.Fatalf("failed to create genai client: %v", err)
	}

	return genaiClient
}

// NewJudgeGenerator creates a Gemini generator for judge integration tests
func NewJudgeGenerator(t *testing.T, config GeminiTestConfig, modelName string) *gemini.Generator {
	return gemini.NewGenerator(NewGeminiClient(t, config), modelName)
}

// NewAuditEmbedder creates a Gemini embedder for audit integration tests
func NewAuditEmbedder(t *testing.T, config GeminiTestConfig, modelName string) *gemini.Embedder {
	return gemini.NewEmbedder(NewGeminiClient(t, config), modelName)
}
