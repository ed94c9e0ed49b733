// Command catalogctl runs the catalog cleanup pipeline and its helpers.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"modhome/internal/config"
	"modhome/internal/logging"
)

type app struct {
	cfg    config.Config
	debug  bool
	logger *zap.Logger
}

func newRootCmd(cfg config.Config) *cobra.Command {
	a := &app{cfg: cfg, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Clean, categorize and publish the modular-home catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(a.debug)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().BoolVar(&a.debug, "debug", cfg.Debug, "Enable debug logging")

	root.AddCommand(
		a.runCmd(),
		a.scrapeCmd(),
		a.profilesCmd(),
		a.similarityCmd(),
		a.exportCSVCmd(),
		a.importCSVCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd(config.Load()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
