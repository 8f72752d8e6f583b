package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/draftkit"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of draftkit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "draftkit version %s\n", strings.TrimSpace(draftkit.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
