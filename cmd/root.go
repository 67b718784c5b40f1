package cmd

import (
	"fmt"
	"os"

	"bcds-membership/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// configDir is the directory holding the optional .env file.
var configDir string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "bcds-membership",
	Short: "Club Membership Service",
	Long: `bcds-membership tracks the club membership of disc golf players.
It imports the membership payment sheet, reconciles players across the sheet,
the PDGA registry and its own database, and answers membership queries.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the development config gives ISO8601 timestamps for operators
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "Directory holding the .env file")
}
