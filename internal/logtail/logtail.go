// Package logtail reads the last lines of the daemon's log file for the
// dashboard and the status CLI.
package logtail

import (
	"os"
	"strings"
)

// Tail returns up to the last n lines of the named file. The log file only
// grows by a handful of lines per day, so reading it whole is fine.
func Tail(path string, n int) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content := strings.TrimRight(string(b), "\n")
	if content == "" {
		return nil, nil
	}
	lines := strings.Split(content, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}
