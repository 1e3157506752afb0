package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-matcher/internal/config"
	"github.com/jonathan/job-matcher/internal/db"
	"github.com/jonathan/job-matcher/internal/interactions"
	"github.com/jonathan/job-matcher/internal/types"
)

var interactFlags struct {
	configPath string
	profileID  string
	postingID  string
	action     string
}

var interactCmd = &cobra.Command{
	Use:   "interact",
	Short: "Record a candidate action against a posting",
	Long:  "Records one of view, apply, save, or dismiss for a (profile, posting) pair. The record is created on first action; repeating an action re-stamps its timestamp.",
	RunE:  runInteract,
}

func init() {
	interactCmd.Flags().StringVar(&interactFlags.configPath, "config", "", "Path to JSON config file")
	interactCmd.Flags().StringVar(&interactFlags.profileID, "profile", "", "Candidate profile UUID (required)")
	interactCmd.Flags().StringVar(&interactFlags.postingID, "posting", "", "Posting UUID (required)")
	interactCmd.Flags().StringVar(&interactFlags.action, "action", "", "Action: view, apply, save, or dismiss (required)")
	_ = interactCmd.MarkFlagRequired("profile")
	_ = interactCmd.MarkFlagRequired("posting")
	_ = interactCmd.MarkFlagRequired("action")

	rootCmd.AddCommand(interactCmd)
}

func runInteract(cmd *cobra.Command, _ []string) error {
	profileID, err := uuid.Parse(interactFlags.profileID)
	if err != nil {
		return fmt.Errorf("invalid profile ID %q: %w", interactFlags.profileID, err)
	}
	postingID, err := uuid.Parse(interactFlags.postingID)
	if err != nil {
		return fmt.Errorf("invalid posting ID %q: %w", interactFlags.postingID, err)
	}

	cfg, err := loadConfigForInteract(interactFlags.configPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	tracker := interactions.NewTracker(database)
	record, err := tracker.Record(ctx, profileID, postingID, types.InteractionAction(interactFlags.action))
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(record)
}

// loadConfigForInteract loads config and requires only the database URL.
func loadConfigForInteract(path string) (*config.Config, error) {
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required (set DATABASE_URL or database_url in config)")
	}
	return cfg, nil
}
