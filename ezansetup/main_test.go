package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestServicePath(t *testing.T) {
	path, err := servicePath("darwin", "/Users/ezan")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := path, "/Users/ezan/Library/LaunchAgents/com.ezanplayer.plist"; got != want {
		t.Errorf("servicePath(darwin) = %q, want %q", got, want)
	}

	path, err = servicePath("linux", "/home/ezan")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := path, "/home/ezan/.config/systemd/user/ezanplayer.service"; got != want {
		t.Errorf("servicePath(linux) = %q, want %q", got, want)
	}

	if _, err := servicePath("plan9", "/usr/ezan"); err == nil {
		t.Error("servicePath(plan9) succeeded, want error")
	}
}

func TestServiceTemplates(t *testing.T) {
	params := serviceParams{
		Label:   label,
		Ezand:   "/usr/local/bin/ezand",
		Config:  "/home/ezan/ezan_config.json",
		Home:    "/home/ezan",
		WorkDir: "/home/ezan",
	}

	var plist bytes.Buffer
	if err := plistTmpl.Execute(&plist, params); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"<string>com.ezanplayer</string>",
		"<string>/usr/local/bin/ezand</string>",
		"<string>-config=/home/ezan/ezan_config.json</string>",
		"<key>KeepAlive</key>",
	} {
		if !strings.Contains(plist.String(), want) {
			t.Errorf("plist does not contain %q:\n%s", want, plist.String())
		}
	}

	var unit bytes.Buffer
	if err := unitTmpl.Execute(&unit, params); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"ExecStart=/usr/local/bin/ezand -config=/home/ezan/ezan_config.json",
		"Restart=always",
		"After=network.target",
	} {
		if !strings.Contains(unit.String(), want) {
			t.Errorf("unit does not contain %q:\n%s", want, unit.String())
		}
	}
}
