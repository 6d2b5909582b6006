package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/feedback-quality/internal/db"
)

var (
	campaignID        string
	campaignName      string
	campaignAIEnabled bool
	historyLimit      int
)

var campaignCmd = &cobra.Command{
	Use:   "campaign",
	Short: "Manage feedback campaigns and their model-review setting",
}

var campaignCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a campaign",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(cmd, func(ctx context.Context, database *db.DB) error {
			record, err := database.CreateCampaign(ctx, campaignID, campaignName, campaignAIEnabled)
			if err != nil {
				return err
			}
			return printJSON(cmd, record)
		})
	},
}

var campaignGetCmd = &cobra.Command{
	Use:   "get <campaign-id>",
	Short: "Show a campaign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, database *db.DB) error {
			record, err := database.GetCampaignRecord(ctx, args[0])
			if err != nil {
				return err
			}
			if record == nil {
				return fmt.Errorf("campaign not found: %s", args[0])
			}
			return printJSON(cmd, record)
		})
	},
}

var campaignSetAICmd = &cobra.Command{
	Use:   "set-ai <campaign-id> <true|false>",
	Short: "Enable or disable model review for a campaign",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		enabled, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("invalid value %q: want true or false", args[1])
		}
		return withDB(cmd, func(ctx context.Context, database *db.DB) error {
			return database.SetCampaignAIEnabled(ctx, args[0], enabled)
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history <target-employee-id>",
	Short: "List recorded evaluations for an employee, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, database *db.DB) error {
			records, err := database.ListEvaluations(ctx, args[0], historyLimit)
			if err != nil {
				return err
			}
			return printJSON(cmd, records)
		})
	},
}

func init() {
	campaignCreateCmd.Flags().StringVar(&campaignID, "id", "", "Campaign id (generated when empty)")
	campaignCreateCmd.Flags().StringVar(&campaignName, "name", "", "Campaign name")
	campaignCreateCmd.Flags().BoolVar(&campaignAIEnabled, "ai-enabled", true, "Allow model review for this campaign")
	_ = campaignCreateCmd.MarkFlagRequired("name")

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum records to list")

	campaignCmd.AddCommand(campaignCreateCmd, campaignGetCmd, campaignSetAICmd)
	rootCmd.AddCommand(campaignCmd, historyCmd)
}

// withDB connects to DATABASE_URL, applies the schema and runs fn.
func withDB(cmd *cobra.Command, fn func(ctx context.Context, database *db.DB) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or database_url config is required")
	}

	ctx := cmd.Context()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return err
	}
	return fn(ctx, database)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
