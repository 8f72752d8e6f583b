package main

import (
	"context"
	"os"

	"github.com/aretw0/draftkit/internal/cli"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Render the stored document",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		width, _ := cmd.Flags().GetInt("width")

		engine, closeStore, err := cli.CreateEngine(cli.EngineOptions{Config: cfg, Logger: logger})
		if err != nil {
			return err
		}
		defer closeStore()

		state, err := engine.Restore(context.Background())
		if err != nil {
			return err
		}

		opts := cli.RenderOptions{Profile: termenv.EnvColorProfile(), Width: width}
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			opts.Profile = termenv.Ascii
			opts.GlamourStyle = "notty"
		}
		return cli.Render(cmd.OutOrStdout(), format, engine.Document(), state.Content(), opts)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringP("format", "f", cli.FormatTerminal, "Output format: terminal, markdown, glamour, html or json")
	showCmd.Flags().Int("width", 80, "Word wrap width for the glamour format")
}
