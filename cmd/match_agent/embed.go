package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-matcher/internal/matching"
)

var embedFlags struct {
	configPath string
	profileID  string
	postingID  string
}

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Generate and persist an embedding for a profile or posting",
	Long:  "Generates an embedding through the configured backend and stores it on the entity. A degraded (mock) result is never persisted.",
	RunE:  runEmbed,
}

func init() {
	embedCmd.Flags().StringVar(&embedFlags.configPath, "config", "", "Path to JSON config file")
	embedCmd.Flags().StringVar(&embedFlags.profileID, "profile", "", "Candidate profile UUID")
	embedCmd.Flags().StringVar(&embedFlags.postingID, "posting", "", "Posting UUID")

	rootCmd.AddCommand(embedCmd)
}

func runEmbed(cmd *cobra.Command, _ []string) error {
	if (embedFlags.profileID == "") == (embedFlags.postingID == "") {
		return fmt.Errorf("exactly one of --profile or --posting is required")
	}

	cfg, err := loadConfig(embedFlags.configPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	comps, err := buildComponents(ctx, cfg)
	if err != nil {
		return err
	}
	defer comps.close()

	var (
		id   uuid.UUID
		text string
	)
	if embedFlags.profileID != "" {
		id, err = uuid.Parse(embedFlags.profileID)
		if err != nil {
			return fmt.Errorf("invalid profile ID %q: %w", embedFlags.profileID, err)
		}
		profile, err := comps.database.GetProfile(ctx, id)
		if err != nil {
			return err
		}
		if profile == nil {
			return fmt.Errorf("profile not found: %s", id)
		}
		text = matching.ProfileText(profile)
	} else {
		id, err = uuid.Parse(embedFlags.postingID)
		if err != nil {
			return fmt.Errorf("invalid posting ID %q: %w", embedFlags.postingID, err)
		}
		posting, err := comps.database.GetPosting(ctx, id)
		if err != nil {
			return err
		}
		if posting == nil {
			return fmt.Errorf("posting not found: %s", id)
		}
		text = matching.PostingText(posting)
	}

	result := comps.provider.Embed(ctx, text, false)
	if result.IsMock {
		return fmt.Errorf("embedding degraded to mock (%s); nothing persisted", result.Reason)
	}

	if embedFlags.profileID != "" {
		err = comps.database.SaveProfileEmbedding(ctx, id, result.Vector)
	} else {
		err = comps.database.SavePostingEmbedding(ctx, id, result.Vector)
	}
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(struct {
		ID         uuid.UUID `json:"id"`
		Dimensions int       `json:"dimensions"`
		Cached     bool      `json:"cached"`
	}{ID: id, Dimensions: len(result.Vector), Cached: result.Cached})
}
