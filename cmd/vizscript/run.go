package main

import (
	"context"

	"github.com/aretw0/vizscript/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <script|->",
	Short: "Run a script file, a library script, or standard input",
	Long: `Runs every command of the script in order. Blank lines and lines starting
with '#' are skipped. A failing command is reported and the script continues.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		return cli.RunScript(sigCtx, env, args[0], cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

var execCmd = &cobra.Command{
	Use:   "exec <command...>",
	Short: "Run a single command",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		return cli.Exec(sigCtx, env, args, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(execCmd)
}
