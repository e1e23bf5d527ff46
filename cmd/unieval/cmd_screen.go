package main

import (
	"encoding/json"
	"fmt"

	language "cloud.google.com/go/language/apiv1"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/unieval-ai/unieval"
	"github.com/unieval-ai/unieval/benchmark"
	"github.com/unieval-ai/unieval/internal/logging"
)

var screenFlags struct {
	casesPath  string
	threshold  float64
	categories []string
	jsonOut    bool
}

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Flag benchmark prompts via the Cloud Natural Language moderation API",
	Long: `Screen runs every case's generation prompt through text moderation and
flags the ones whose confidence exceeds the threshold. Screening is a
benchmark-quality diagnostic; it never affects scores. Requires Google
Cloud application default credentials.`,
	RunE: runScreen,
}

func init() {
	f := screenCmd.Flags()
	f.StringVar(&screenFlags.casesPath, "cases", "", "Path to benchmark cases YAML (required)")
	f.Float64Var(&screenFlags.threshold, "threshold", 0.5, "Moderation confidence threshold for flagging")
	f.StringSliceVar(&screenFlags.categories, "categories", nil, "Moderation categories to check (default: all)")
	f.BoolVar(&screenFlags.jsonOut, "json", false, "Emit results as JSON instead of text")
	_ = screenCmd.MarkFlagRequired("cases")
}

func runScreen(cmd *cobra.Command, _ []string) error {
	runID := uuid.NewString()
	log := logging.New("screen").With("run_id", runID)
	ctx := cmd.Context()

	cases, err := benchmark.LoadCasesFile(screenFlags.casesPath)
	if err != nil {
		return fmt.Errorf("load cases: %w", err)
	}

	langClient, err := language.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("create language client: %w", err)
	}
	defer langClient.Close()

	judge := unieval.NewGeminiJudge(unieval.WithLanguageClient(langClient))
	screener := judge.SafetyScreen(unieval.ScreenOptions{
		Threshold:  screenFlags.threshold,
		Categories: screenFlags.categories,
	})

	results, err := screener.ScreenCases(ctx, cases)
	if err != nil {
		return fmt.Errorf("screen cases: %w", err)
	}

	flagged := 0
	for _, r := range results {
		if !r.Result.Safe {
			flagged++
		}
	}
	log.Info("screened", "cases", len(results), "flagged", flagged)

	out := cmd.OutOrStdout()
	if screenFlags.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	fmt.Fprint(out, FormatScreenResults(results, runID))
	return nil
}
