// Package statuscli implements the ezanstatus command. It is read-only: it
// shares nothing with the running daemon beyond the config file and the log
// file, and re-fetches today's schedule itself.
package statuscli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mkarci/ezan-tools/internal/ezanconfig"
)

var rootCmd = &cobra.Command{
	Use:   "ezanstatus",
	Short: "Inspect the ezan player",
	Long:  `ezanstatus shows prayer times, daemon service state and recent log lines.`,
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config",
		"ezan_config.json", "path to the JSON configuration file")
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(timesCmd)
	rootCmd.AddCommand(serviceCmd)
	rootCmd.AddCommand(logsCmd)
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func loadConfig() (*ezanconfig.Config, error) {
	return ezanconfig.Load(configPath)
}

// https://en.wikipedia.org/wiki/ANSI_escape_code#Colors
const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiGreen = "\033[32m"
	ansiRed   = "\033[31m"
	ansiGray  = "\033[90m"
)

func colored(color, text string) string {
	return color + text + ansiReset
}
