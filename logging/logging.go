// Package logging routes the standard logger to a file or nowhere. Both
// binaries own the terminal or a window, so stray log lines must never reach
// stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

const (
	DefaultDir = "logs"
)

// Setup discards all log output unless debug is set, in which case it appends
// to dir/name. The returned file is nil when logging is disabled; callers close
// it on exit.
func Setup(debug bool, dir, name string) (*os.File, error) {
	if !debug {
		log.SetOutput(io.Discard)
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil, fmt.Errorf("open log file: %w", err)
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("logging started, pid %d", os.Getpid())
	return f, nil
}
