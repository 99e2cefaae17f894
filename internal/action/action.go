// Package action shells out to platform commands for waking the display,
// setting the output volume and opening a URL in the default browser.
package action

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Commands selects the platform commands at construction time.
type Commands struct {
	goos string

	// run is replaceable for tests.
	run func(name string, arg ...string) error
}

func New() *Commands {
	return &Commands{goos: runtime.GOOS, run: run}
}

func run(name string, arg ...string) error {
	cmd := exec.Command(name, arg...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%v: %v", cmd.Args, err)
	}
	return nil
}

// Wake turns the display back on (and, on macOS, asserts the machine awake
// for a few seconds so the browser has time to come up).
func (c *Commands) Wake() error {
	switch c.goos {
	case "darwin":
		return c.run("caffeinate", "-u", "-t", "10")
	case "linux":
		return c.run("xset", "dpms", "force", "on")
	case "windows":
		return c.run("powercfg", "/WAKE")
	}
	return fmt.Errorf("no wake command for %s", c.goos)
}

// SetVolume sets the system output volume in percent.
func (c *Commands) SetVolume(percent int) error {
	switch c.goos {
	case "darwin":
		return c.run("osascript", "-e", fmt.Sprintf("set volume output volume %d", percent))
	case "linux":
		return c.run("pactl", "set-sink-volume", "@DEFAULT_SINK@", fmt.Sprintf("%d%%", percent))
	}
	// No stock volume CLI elsewhere; the video plays at whatever the
	// current volume is.
	return nil
}

// OpenURL opens the URL in the default browser.
func (c *Commands) OpenURL(url string) error {
	switch c.goos {
	case "darwin":
		return c.run("open", url)
	case "linux":
		return c.run("xdg-open", url)
	case "windows":
		return c.run("rundll32", "url.dll,FileProtocolHandler", url)
	}
	return fmt.Errorf("no browser opener for %s", c.goos)
}
