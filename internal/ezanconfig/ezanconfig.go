// Package ezanconfig loads and validates the ezan_config.json file shared
// by ezand, ezanstatus and ezansetup.
package ezanconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mkarci/ezan-tools/internal/prayer"
)

const (
	ModeHome   = "home"   // triggers play normally
	ModeOffice = "office" // triggers are skipped (but still consumed)
)

// Audio holds playback settings.
type Audio struct {
	Volume int `json:"ezan_volume"`
}

// Config is the on-disk configuration. It is loaded once at startup and
// read-only afterwards, except for Mode and Audio.Volume, which the ezand
// dashboard persists back to disk.
type Config struct {
	Videos      map[string]string `json:"youtube_videos"`
	Location    prayer.Location   `json:"location"`
	Audio       Audio             `json:"audio_settings"`
	Mode        string            `json:"mode,omitempty"`
	PollSeconds int               `json:"poll_interval_seconds,omitempty"`
	LogFile     string            `json:"log_file,omitempty"`
}

// Load reads and validates the named config file. Any validation error is
// fatal to callers: the daemon must not start with an incomplete config.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeHome
	}
	if c.PollSeconds == 0 {
		c.PollSeconds = 30
	}
	if c.Audio.Volume == 0 {
		c.Audio.Volume = 75
	}
	if c.Location.Method == 0 {
		c.Location.Method = 13 // closest to the Diyanet calculations
	}
	if c.LogFile == "" {
		c.LogFile = "ezan_player.log"
	}
}

// Validate checks that the config is complete: a video URL for each of the
// five prayers (placeholders from the default config are rejected), a
// location, and sane volume/poll values.
func (c *Config) Validate() error {
	for _, name := range prayer.Names {
		url, ok := c.Videos[string(name)]
		if !ok || url == "" {
			return fmt.Errorf("no video URL configured for %s", name)
		}
		if strings.Contains(url, "YOUR_") {
			return fmt.Errorf("video URL for %s is still the placeholder %q", name, url)
		}
	}
	if c.Location.City == "" || c.Location.Country == "" {
		return fmt.Errorf("location.city and location.country must be set")
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("ezan_volume %d out of range [0, 100]", c.Audio.Volume)
	}
	if c.PollSeconds < 1 {
		return fmt.Errorf("poll_interval_seconds %d must be positive", c.PollSeconds)
	}
	if c.Mode != ModeHome && c.Mode != ModeOffice {
		return fmt.Errorf("mode %q must be %q or %q", c.Mode, ModeHome, ModeOffice)
	}
	return nil
}

// URL returns the video URL configured for the named prayer.
func (c *Config) URL(name prayer.Name) string {
	return c.Videos[string(name)]
}

// PollInterval returns the scheduler tick interval.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollSeconds) * time.Second
}

// Save writes the config back to the named file. Used by the dashboard to
// persist mode and volume changes.
func (c *Config) Save(path string) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0644)
}
