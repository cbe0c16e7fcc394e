// Package commands holds the billsctl subcommands.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/garyjia/expense-bills/internal/config"
	"github.com/garyjia/expense-bills/internal/container"
	"github.com/garyjia/expense-bills/pkg/utils"
)

var (
	configPath string
	verbose    bool
)

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "billsctl",
		Short:         "Inspect and export expense bills",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to the YAML configuration file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(formatDateCmd(), formatStatusCmd(), checkReceiptCmd(), listCmd(), exportCmd())
	return root
}

func openApp(cmd *cobra.Command) (*container.Container, error) {
	path, err := config.ResolvePath(configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := zap.NewNop()
	if verbose {
		logger, err = utils.NewLogger(utils.LoggerConfig{
			Level:      cfg.Logger.Level,
			OutputPath: "stderr",
			Format:     "console",
		})
		if err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
	}

	return container.New(cfg, logger)
}
