package cmd

import (
	"fmt"
	"os"

	"gameshelf/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "gameshelf",
	Short: "Board game collection tracker",
	Long: `Gameshelf keeps a local copy of users' BoardGameGeek collections.
It syncs owned games into a local database, serves them for browsing,
and prints QR label sheets for game shelves.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with debug level gives readable timestamps for a
		// CLI tool; the server command configures its own logger.
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
