// Package cmd wires the fixedswap CLI.
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fixedswap/pkg/config"
)

var (
	cfgFile string
	verbose bool

	logger *zap.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "fixedswap",
	Short: "Fixed-rate two-asset swap facility tooling",
	Long: `fixedswap derives pool addresses, previews conversions, watches vault
balances, and runs the deposit+swap scenario against the in-memory host.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			return err
		}
		cfg, err = config.Load(cfgFile)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}
