package main

import (
	"os"

	"github.com/aretw0/vizscript/internal/cli"
	"github.com/spf13/cobra"
)

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "List the available actions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		plain, _ := cmd.Flags().GetBool("plain")
		return cli.Actions(env, os.Stdout, !plain)
	},
}

func init() {
	rootCmd.AddCommand(actionsCmd)
	actionsCmd.Flags().Bool("plain", false, "Print plain text instead of rendered markdown")
}
