package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/bbaxromov14/eduhelper/internal/app"
	"github.com/bbaxromov14/eduhelper/internal/config"
	"github.com/bbaxromov14/eduhelper/internal/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "eductl",
	Short:         "Administer the EduHelper progress store",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		logger.SetDefault(logger.New(
			logger.WithLevel(logger.ParseLevel(level)),
			logger.WithOutput(cmd.ErrOrStderr()),
		))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("driver", "", "Database driver, sqlite3 or postgres (overrides DB_DRIVER)")
	rootCmd.PersistentFlags().String("dsn", "", "Database DSN (overrides DB_DSN)")
	rootCmd.PersistentFlags().String("log-level", "WARN", "Log level")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(leaderboardCmd)
}

// loadConfig reads the environment and applies the database flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Load()
	if v, _ := cmd.Flags().GetString("driver"); v != "" {
		cfg.DBDriver = v
	}
	if v, _ := cmd.Flags().GetString("dsn"); v != "" {
		cfg.DBDSN = v
	}
	return cfg, cfg.Validate()
}

// withApp runs fn against a fully wired application.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := logger.NewContext(cmd.Context(), logger.Default())
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
