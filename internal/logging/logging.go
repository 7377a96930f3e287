// Package logging builds the charmbracelet loggers used by the hosts,
// optionally teeing into a rolling file.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	Level  string    // debug, info, warn, error; empty means info
	File   string    // rolling log file, empty for none
	Prefix string    // component name shown on each line
	Output io.Writer // console output, os.Stderr when nil
	Quiet  bool      // write to File only
}

// Rotation limits for File.
const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 7
)

// New returns a logger for one component. The returned closer releases
// the log file; it is a no-op without one.
func New(opts Options) (*log.Logger, io.Closer, error) {
	level := log.InfoLevel
	if s := strings.TrimSpace(opts.Level); s != "" {
		l, err := log.ParseLevel(s)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
		level = l
	}

	console := opts.Output
	if console == nil {
		console = os.Stderr
	}

	var (
		out    io.Writer = console
		closer io.Closer = nopCloser{}
	)
	if opts.File != "" {
		roll := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		}
		closer = roll
		out = io.MultiWriter(console, roll)
		if opts.Quiet {
			out = roll
		}
	} else if opts.Quiet {
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          opts.Prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
