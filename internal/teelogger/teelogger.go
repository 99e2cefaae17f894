// Package teelogger provides loggers which send their output to multiple
// writers, like the tee(1) command.
package teelogger

import (
	"io"
	"log"
	"os"
)

// NewFile returns a logger which appends to the named log file and writes to
// os.Stderr. If the file cannot be opened, logging continues on os.Stderr
// alone.
func NewFile(path string) *log.Logger {
	var w io.Writer
	w, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("opening %s: %v", path, err)
		w = io.Discard
	}

	return log.New(io.MultiWriter(os.Stderr, w), "", log.LstdFlags|log.Lshortfile)
}
