package statuscli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkarci/ezan-tools/internal/logtail"
)

var logLines int

var logsCmd = &cobra.Command{
	Use:          "logs",
	Short:        "Show the last lines of the daemon log",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		lines, err := logtail.Tail(cfg.LogFile, logLines)
		if err != nil {
			return err
		}
		for _, line := range lines {
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	logsCmd.Flags().IntVarP(&logLines, "lines", "n", 20, "number of log lines to show")
}
