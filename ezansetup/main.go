// ezansetup validates the config file and registers ezand with the platform
// service manager: a LaunchAgent on macOS, a systemd user unit on Linux.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"text/template"

	"github.com/mkarci/ezan-tools/internal/ezanconfig"
)

var (
	configPath = flag.String("config",
		"ezan_config.json",
		"Path to the JSON configuration file")

	ezandPath = flag.String("ezand",
		"",
		"Path to the ezand binary. Defaults to looking next to this binary")

	uninstall = flag.Bool("uninstall",
		false,
		"Remove the service definition instead of installing it")
)

const label = "com.ezanplayer"

var plistTmpl = template.Must(template.New("").Parse(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>{{ .Label }}</string>
    <key>ProgramArguments</key>
    <array>
        <string>{{ .Ezand }}</string>
        <string>-config={{ .Config }}</string>
    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <true/>
    <key>StandardOutPath</key>
    <string>{{ .Home }}/Library/Logs/ezanplayer.log</string>
    <key>StandardErrorPath</key>
    <string>{{ .Home }}/Library/Logs/ezanplayer_error.log</string>
    <key>WorkingDirectory</key>
    <string>{{ .WorkDir }}</string>
</dict>
</plist>
`))

var unitTmpl = template.Must(template.New("").Parse(`[Unit]
Description=Ezan Player - Automated Prayer Time Video Player
After=network.target

[Service]
Type=simple
WorkingDirectory={{ .WorkDir }}
ExecStart={{ .Ezand }} -config={{ .Config }}
Restart=always
RestartSec=10

[Install]
WantedBy=default.target
`))

type serviceParams struct {
	Label   string
	Ezand   string
	Config  string
	Home    string
	WorkDir string
}

func servicePath(goos, home string) (string, error) {
	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "LaunchAgents", label+".plist"), nil
	case "linux":
		return filepath.Join(home, ".config", "systemd", "user", "ezanplayer.service"), nil
	}
	return "", fmt.Errorf("no service manager support for %s", goos)
}

func ezansetup() error {
	flag.Parse()

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	path, err := servicePath(runtime.GOOS, home)
	if err != nil {
		return err
	}

	if *uninstall {
		if err := os.Remove(path); err != nil {
			return err
		}
		log.Printf("removed %s", path)
		return nil
	}

	// Refuse to install a service that would immediately die on startup.
	if _, err := ezanconfig.Load(*configPath); err != nil {
		return fmt.Errorf("config not ready: %v", err)
	}

	ezand := *ezandPath
	if ezand == "" {
		self, err := os.Executable()
		if err != nil {
			return err
		}
		ezand = filepath.Join(filepath.Dir(self), "ezand")
	}
	config, err := filepath.Abs(*configPath)
	if err != nil {
		return err
	}
	params := serviceParams{
		Label:   label,
		Ezand:   ezand,
		Config:  config,
		Home:    home,
		WorkDir: filepath.Dir(config),
	}

	tmpl := unitTmpl
	if runtime.GOOS == "darwin" {
		tmpl = plistTmpl
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return err
	}
	log.Printf("wrote %s", path)
	if runtime.GOOS == "darwin" {
		log.Printf("start the service with: launchctl load %s", path)
	} else {
		log.Printf("start the service with: systemctl --user daemon-reload && systemctl --user enable --now ezanplayer")
	}
	return nil
}

func main() {
	if err := ezansetup(); err != nil {
		log.Fatal(err)
	}
}
