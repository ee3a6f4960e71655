package main

import (
	"github.com/aretw0/vizscript/internal/cli"
	"github.com/spf13/cobra"
)

var scriptsCmd = &cobra.Command{
	Use:   "scripts",
	Short: "Manage the script library",
}

var scriptsListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List library scripts",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()
		return cli.ListScripts(cmd.Context(), env, cmd.OutOrStdout())
	},
}

var scriptsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a library script",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()
		return cli.ShowScript(cmd.Context(), env, args[0], cmd.OutOrStdout())
	},
}

var scriptsRemoveCmd = &cobra.Command{
	Use:     "rm <name>",
	Aliases: []string{"delete"},
	Short:   "Delete a library script",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()
		return cli.RemoveScript(cmd.Context(), env, args[0], cmd.OutOrStdout())
	},
}

var scriptsImportCmd = &cobra.Command{
	Use:   "import <name> <file>",
	Short: "Save a script file into the library",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()
		return cli.ImportScript(cmd.Context(), env, args[0], args[1], cmd.OutOrStdout())
	},
}

func init() {
	scriptsCmd.AddCommand(scriptsListCmd, scriptsShowCmd, scriptsRemoveCmd, scriptsImportCmd)
	rootCmd.AddCommand(scriptsCmd)
}
