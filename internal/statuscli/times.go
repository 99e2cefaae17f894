package statuscli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkarci/ezan-tools/internal/prayer"
)

var timesCmd = &cobra.Command{
	Use:          "times",
	Short:        "Show all of today's prayer times",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		source := &prayer.Source{Location: cfg.Location}
		now := time.Now()
		sched, err := source.Fetch(cmd.Context(), now)
		if err != nil {
			return fmt.Errorf("fetching prayer times: %v", err)
		}
		next, _, _ := sched.Next(now)
		for _, name := range prayer.Names {
			at := sched.Time(name)
			line := fmt.Sprintf("%-8s %v", name, at)
			switch {
			case name == next:
				line = colored(ansiBold+ansiGreen, line) + "  ← next"
			case at <= prayer.At(now):
				line = colored(ansiGray, line)
			}
			fmt.Println(line)
		}
		return nil
	},
}
