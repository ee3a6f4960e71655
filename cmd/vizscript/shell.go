package main

import (
	"context"
	"os"

	"github.com/aretw0/vizscript/internal/cli"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive command shell",
	Long: `Reads commands from standard input and runs them as they are entered.
'help' lists the actions, 'history' prints the commands run so far, 'exit' quits.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		record, _ := cmd.Flags().GetString("record")

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		return cli.Shell(sigCtx, env, cli.ShellOptions{
			Input:  cli.NewInterruptibleReader(os.Stdin, sigCtx.Done()),
			Output: os.Stdout,
			Record: record,
		})
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
	shellCmd.Flags().String("record", "", "Append the session's commands to this library script on exit")
	rootCmd.Flags().AddFlagSet(shellCmd.Flags())
}
