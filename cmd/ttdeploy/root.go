package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "ttdeploy",
		Short: "Deploy the TimeTracker application with its database and cache",
		Long: `ttdeploy validates a TimeTracker deployment request and then either writes
a docker-compose manifest and .env file (--dry-run) or creates the resource
group, managed environment and container apps on the selected backend.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(a.configPath)
			if err != nil {
				return &ConfigError{Err: err}
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = a.logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.Log.Format = a.logFormat
			}
			a.cfg = cfg
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (YAML)")
	pf.StringVar(&a.logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	pf.StringVar(&a.logFormat, "log-format", "console", "log format (console|json)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "verbose output (debug logging)")

	root.AddCommand(newDeployCmd(a), newValidateCmd(a), newVersionCmd(a))
	return root
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(*cobra.Command, []string) {
			fmt.Fprintf(a.stdout, "ttdeploy %s (built %s)\n", Version, BuildTime)
		},
	}
}
