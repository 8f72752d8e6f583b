package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/draftkit/internal/cli"
	"github.com/aretw0/draftkit/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "draftkit",
	Short: "Draftkit is a markdown-style autoformat editor engine",
	Long: `Draftkit turns typed markers like "# ", "* " or "` + "```" + ` " into rich-text
formatting and persists the document on every change.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./draftkit.yaml if present)")
	rootCmd.PersistentFlags().String("dir", "", "Directory holding the stored document (overrides store.path)")
	rootCmd.PersistentFlags().String("store", "", "Store driver: loam, file, redis or memory (overrides store.driver)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error or off")
}

// loadConfig reads the config file and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}

	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.Store.Path = dir
	}
	if driver, _ := cmd.Flags().GetString("store"); driver != "" {
		cfg.Store.Driver = driver
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	return cfg, cli.CreateLogger(cfg.LogLevel), nil
}
