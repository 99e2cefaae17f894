package statuscli

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

// serviceLabel is the identifier ezansetup registers the daemon under.
const serviceLabel = "com.ezanplayer"

var serviceCmd = &cobra.Command{
	Use:          "service",
	Short:        "Show whether the ezand service is loaded",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		running, detail, err := serviceState(runtime.GOOS)
		if err != nil {
			return err
		}
		if running {
			fmt.Printf("%s %s\n", colored(ansiGreen, "running"), detail)
		} else {
			fmt.Printf("%s %s\n", colored(ansiRed, "not running"), detail)
		}
		return nil
	},
}

func serviceState(goos string) (running bool, detail string, _ error) {
	switch goos {
	case "darwin":
		out, err := exec.Command("launchctl", "list").Output()
		if err != nil {
			return false, "", fmt.Errorf("launchctl list: %v", err)
		}
		for _, line := range strings.Split(string(out), "\n") {
			if strings.Contains(line, serviceLabel) {
				return true, "(launchctl: " + strings.TrimSpace(line) + ")", nil
			}
		}
		return false, "(not in launchctl list)", nil
	case "linux":
		out, _ := exec.Command("systemctl", "--user", "is-active", "ezanplayer").Output()
		state := strings.TrimSpace(string(out))
		return state == "active", "(systemctl: " + state + ")", nil
	}
	return false, "", fmt.Errorf("no service manager support for %s", goos)
}
