// Command stagectl imports and inspects stage leaderboards from the command line.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/vytor/stageboard/internal/app"
	"github.com/vytor/stageboard/internal/config"
	"github.com/vytor/stageboard/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug, quiet bool
	var cmdRoot = &cobra.Command{
		Use:   "stagectl",
		Short: "Stage leaderboard command line utility",
		Long:  `Import stage leaderboards from the scoring platform and browse the stored copies.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if debug {
				cfg.LogLevel = "DEBUG"
			} else if quiet {
				cfg.LogLevel = "ERROR"
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger.SetDefault(app.NewLogger(cfg).WithPrefix("stagectl"))

			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			cmd.SetContext(withApp(cmd.Context(), a))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a := appFrom(cmd.Context()); a != nil {
				return a.Close()
			}
			return nil
		},
	}
	cmdRoot.PersistentFlags().BoolVar(&debug, "debug", false, "log debugging information")
	cmdRoot.PersistentFlags().BoolVar(&quiet, "quiet", false, "log errors only")

	cmdRoot.AddCommand(cmdImport())
	cmdRoot.AddCommand(cmdShow())
	cmdRoot.AddCommand(cmdList())
	return cmdRoot
}
