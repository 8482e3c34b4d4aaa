package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/wizquest/internal/config"
	"github.com/abhisek/wizquest/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "wizquest",
	Short: "Timed math and spelling practice for kids",
	Long: `WizQuest is a terminal game where children practice arithmetic and
vocabulary against the clock. Difficulty follows the player's level.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, playOptions{})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides WIZQUEST_DB env var)")
	rootCmd.PersistentFlags().String("env-file", "", "Load settings from this file instead of .env")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(tierCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads settings from the environment and the optional env file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if f, _ := cmd.Flags().GetString("env-file"); f != "" {
		return config.Load(f)
	}
	return config.Load()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then WIZQUEST_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
