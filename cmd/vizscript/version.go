package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/vizscript"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of vizscript",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vizscript version %s\n", strings.TrimSpace(vizscript.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
