package action

import (
	"fmt"
	"strings"
	"testing"
)

func recording(goos string) (*Commands, *[]string) {
	var calls []string
	c := &Commands{
		goos: goos,
		run: func(name string, arg ...string) error {
			calls = append(calls, strings.Join(append([]string{name}, arg...), " "))
			return nil
		},
	}
	return c, &calls
}

func TestWake(t *testing.T) {
	for goos, want := range map[string]string{
		"darwin":  "caffeinate -u -t 10",
		"linux":   "xset dpms force on",
		"windows": "powercfg /WAKE",
	} {
		t.Run(goos, func(t *testing.T) {
			c, calls := recording(goos)
			if err := c.Wake(); err != nil {
				t.Fatal(err)
			}
			if got := strings.Join(*calls, "; "); got != want {
				t.Errorf("Wake() ran %q, want %q", got, want)
			}
		})
	}

	c, _ := recording("plan9")
	if err := c.Wake(); err == nil {
		t.Error("Wake() on unsupported platform succeeded, want error")
	}
}

func TestSetVolume(t *testing.T) {
	c, calls := recording("darwin")
	if err := c.SetVolume(80); err != nil {
		t.Fatal(err)
	}
	if got, want := (*calls)[0], "osascript -e set volume output volume 80"; got != want {
		t.Errorf("SetVolume(80) ran %q, want %q", got, want)
	}

	c, calls = recording("linux")
	if err := c.SetVolume(80); err != nil {
		t.Fatal(err)
	}
	if got, want := (*calls)[0], "pactl set-sink-volume @DEFAULT_SINK@ 80%"; got != want {
		t.Errorf("SetVolume(80) ran %q, want %q", got, want)
	}

	// Windows has no stock volume CLI; SetVolume is a no-op there.
	c, calls = recording("windows")
	if err := c.SetVolume(80); err != nil {
		t.Fatal(err)
	}
	if got, want := len(*calls), 0; got != want {
		t.Errorf("SetVolume on windows ran %d commands, want %d", got, want)
	}
}

func TestOpenURL(t *testing.T) {
	const url = "https://youtube.com/watch?v=abc"
	for goos, want := range map[string]string{
		"darwin":  "open " + url,
		"linux":   "xdg-open " + url,
		"windows": fmt.Sprintf("rundll32 url.dll,FileProtocolHandler %s", url),
	} {
		t.Run(goos, func(t *testing.T) {
			c, calls := recording(goos)
			if err := c.OpenURL(url); err != nil {
				t.Fatal(err)
			}
			if got := strings.Join(*calls, "; "); got != want {
				t.Errorf("OpenURL() ran %q, want %q", got, want)
			}
		})
	}
}
