package main

import (
	"fmt"
	"os"

	"github.com/aretw0/vizscript"
	"github.com/aretw0/vizscript/internal/cli"
	"github.com/aretw0/vizscript/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vizscript",
	Short: "vizscript runs command scripts against a visualization workspace",
	Long: `vizscript queues text commands such as 'add-data-file csv:/data/iris.csv'
and executes them in order against a workspace. Scripts can be run from files,
from the script library, interactively, or remotely over HTTP and MCP.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return shellCmd.RunE(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./"+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().String("scripts-home", "", "Directory of the script library (overrides the config file)")
}

// loadEnv reads the configuration, applies flag overrides and wires the environment.
func loadEnv(cmd *cobra.Command, extra ...vizscript.Option) (*cli.Env, error) {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if home, _ := cmd.Flags().GetString("scripts-home"); home != "" {
		cfg.ScriptsHome = home
	}
	return cli.NewEnv(cfg, debug, cmd.OutOrStdout(), extra...)
}
