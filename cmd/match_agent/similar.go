package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-matcher/internal/observability"
)

var similarFlags struct {
	configPath string
	postingID  string
	limit      int
	verbose    bool
}

var similarCmd = &cobra.Command{
	Use:   "similar",
	Short: "Find postings similar to a reference posting",
	RunE:  runSimilar,
}

func init() {
	similarCmd.Flags().StringVar(&similarFlags.configPath, "config", "", "Path to JSON config file")
	similarCmd.Flags().StringVar(&similarFlags.postingID, "posting", "", "Reference posting UUID (required)")
	similarCmd.Flags().IntVar(&similarFlags.limit, "limit", 10, "Maximum results to return")
	similarCmd.Flags().BoolVar(&similarFlags.verbose, "verbose", false, "Print formatted results")
	_ = similarCmd.MarkFlagRequired("posting")

	rootCmd.AddCommand(similarCmd)
}

func runSimilar(cmd *cobra.Command, _ []string) error {
	postingID, err := uuid.Parse(similarFlags.postingID)
	if err != nil {
		return fmt.Errorf("invalid posting ID %q: %w", similarFlags.postingID, err)
	}

	cfg, err := loadConfig(similarFlags.configPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	comps, err := buildComponents(ctx, cfg)
	if err != nil {
		return err
	}
	defer comps.close()

	reference, err := comps.database.GetPosting(ctx, postingID)
	if err != nil {
		return err
	}
	if reference == nil {
		return fmt.Errorf("posting not found: %s", postingID)
	}

	pool, err := comps.database.ListActivePostings(ctx)
	if err != nil {
		return err
	}

	matches := comps.pipeline.FindSimilarPostings(reference, pool)
	if similarFlags.limit > 0 && len(matches) > similarFlags.limit {
		matches = matches[:similarFlags.limit]
	}

	if similarFlags.verbose || cfg.Verbose {
		observability.NewPrinter(os.Stdout).PrintSemanticMatches(matches)
		return nil
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(matches)
}
