package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/draftkit/internal/cli"
	"github.com/aretw0/draftkit/pkg/surface"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit the stored document line by line",
	Long: `Opens the stored document in a line editor. Each line is typed one character
at a time so markers trigger exactly as they would in a rich-text surface.
Input can be piped for scripted edits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		engine, closeStore, err := cli.CreateEngine(cli.EngineOptions{Config: cfg, Logger: logger})
		if err != nil {
			return err
		}
		defer closeStore()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		interactive := term.IsTerminal(int(os.Stdin.Fd()))
		return cli.RunSession(ctx, cli.SessionOptions{
			Surface:     surface.New(ctx, engine, surface.WithLogger(logger)),
			Doc:         engine.Document(),
			In:          cmd.InOrStdin(),
			Out:         cmd.OutOrStdout(),
			Interactive: interactive,
			Render:      cli.RenderOptions{Profile: termenv.EnvColorProfile()},
			Logger:      logger,
		})
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
