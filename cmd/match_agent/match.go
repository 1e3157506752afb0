package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-matcher/internal/matching"
	"github.com/jonathan/job-matcher/internal/observability"
)

var matchFlags struct {
	configPath     string
	profileID      string
	limit          int
	minScore       float64
	useEmbeddings  bool
	maxEmbedCalls  int
	employmentType string
	remoteOnly     bool
	summarizeTop   int
	verbose        bool
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank open postings for a candidate profile",
	RunE:  runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchFlags.configPath, "config", "", "Path to JSON config file")
	matchCmd.Flags().StringVar(&matchFlags.profileID, "profile", "", "Candidate profile UUID (required)")
	matchCmd.Flags().IntVar(&matchFlags.limit, "limit", 0, "Maximum results to return")
	matchCmd.Flags().Float64Var(&matchFlags.minScore, "min-score", 0, "Drop results below this score (0-100)")
	matchCmd.Flags().BoolVar(&matchFlags.useEmbeddings, "embeddings", false, "Enable hybrid scoring with embedding similarity")
	matchCmd.Flags().IntVar(&matchFlags.maxEmbedCalls, "max-embed-calls", 0, "Budget of embedding calls for this request")
	matchCmd.Flags().StringVar(&matchFlags.employmentType, "employment-type", "", "Hard filter on employment type")
	matchCmd.Flags().BoolVar(&matchFlags.remoteOnly, "remote-only", false, "Only match remote postings")
	matchCmd.Flags().IntVar(&matchFlags.summarizeTop, "summarize-top", 3, "Attach summaries to the top N results")
	matchCmd.Flags().BoolVar(&matchFlags.verbose, "verbose", false, "Print formatted match breakdowns")
	_ = matchCmd.MarkFlagRequired("profile")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	profileID, err := uuid.Parse(matchFlags.profileID)
	if err != nil {
		return fmt.Errorf("invalid profile ID %q: %w", matchFlags.profileID, err)
	}

	cfg, err := loadConfig(matchFlags.configPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	comps, err := buildComponents(ctx, cfg)
	if err != nil {
		return err
	}
	defer comps.close()

	opts := matching.Options{
		Limit:          firstNonZeroInt(matchFlags.limit, cfg.Limit),
		MinMatchScore:  firstNonZeroFloat(matchFlags.minScore, cfg.MinMatchScore),
		UseEmbeddings:  matchFlags.useEmbeddings || cfg.UseEmbeddings,
		MaxEmbedCalls:  firstNonZeroInt(matchFlags.maxEmbedCalls, cfg.MaxEmbedCalls),
		EmploymentType: matchFlags.employmentType,
		RemoteOnly:     matchFlags.remoteOnly,
		SummarizeTop:   matchFlags.summarizeTop,
	}

	response, err := comps.pipeline.MatchForProfile(ctx, profileID, opts)
	if err != nil {
		return err
	}

	if matchFlags.verbose || cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintMatchResponse(response)
		printer.PrintProviderStats(comps.provider.Stats())
		return nil
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

func firstNonZeroInt(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func firstNonZeroFloat(values ...float64) float64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
