package statuscli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkarci/ezan-tools/internal/prayer"
)

var nextCmd = &cobra.Command{
	Use:          "next",
	Short:        "Show the next prayer and its countdown",
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
		name, at, ok := sched.Next(now)
		if !ok {
			fmt.Printf("all prayers for today have passed; next is %s tomorrow\n", prayer.Fajr)
			return nil
		}
		until := untilTimeOfDay(now, at)
		fmt.Printf("%s at %v (in %v)\n",
			colored(ansiBold+ansiGreen, string(name)), at, until.Truncate(time.Second))
		return nil
	},
}

func untilTimeOfDay(now time.Time, at prayer.TimeOfDay) time.Duration {
	y, m, d := now.Date()
	then := time.Date(y, m, d, int(at)/60, int(at)%60, 0, 0, now.Location())
	return then.Sub(now)
}
