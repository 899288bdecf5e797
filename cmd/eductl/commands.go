package main

import (
	"context"
	"fmt"

	"github.com/bbaxromov14/eduhelper/internal/achievement"
	"github.com/bbaxromov14/eduhelper/internal/app"
	"github.com/bbaxromov14/eduhelper/internal/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		database, err := db.Open(cmd.Context(), cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := database.Migrate(cmd.Context()); err != nil {
			return err
		}
		applied, err := database.AppliedMigrations(cmd.Context())
		if err != nil {
			return err
		}
		for _, m := range applied {
			fmt.Fprintln(cmd.OutOrStdout(), m)
		}
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo courses, lessons and tests",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			if err := app.Seed(ctx, a.Repos); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "seeded demo data")
			return nil
		})
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Print a user's progress statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			stats, err := a.Progress.GetProgress(ctx, userID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), stats)
		})
	},
}

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Inspect and sync user achievements",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			statuses, err := a.Achievements.List(ctx, userID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), statuses)
		})
	},
}

var achievementsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Unlock every achievement the user now qualifies for",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			unlocked, err := a.Achievements.Sync(ctx, userID)
			if err != nil {
				return err
			}
			if len(unlocked) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing new")
				return nil
			}
			for _, r := range unlocked {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t+%d\n", r.ID, r.Name, r.PointsAwarded)
			}
			return nil
		})
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog [file]",
	Short: "Validate and print an achievement catalog",
	Long:  "Validates the given catalog file, or the built-in catalog when none is given, and prints its rules.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		catalog, err := achievement.Load(path)
		if err != nil {
			return err
		}
		for _, r := range catalog.Rules() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-14s %4d  %s\n", r.ID, r.Requirement, r.PointsAwarded, r.Name)
		}
		return nil
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the top users by points",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			entries, err := a.Leaderboard.Top(ctx, limit)
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%3d  %-24s %d\n", e.Rank, e.UserID, e.Points)
			}
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{progressCmd, achievementsCmd, achievementsSyncCmd} {
		c.Flags().String("user", "", "User id")
		_ = c.MarkFlagRequired("user")
	}
	achievementsCmd.AddCommand(achievementsSyncCmd)
	leaderboardCmd.Flags().Int("limit", 10, "Number of users to show")
}
