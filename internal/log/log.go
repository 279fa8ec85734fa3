// Package log builds the structured loggers shared by the commands.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/adrg/xdg"
	charmlog "github.com/charmbracelet/log"
)

// Options configures a logger.
type Options struct {
	Level  string // debug, info, warn, error; empty means info
	Format string // text, logfmt or json; empty means text
	Prefix string
}

// New creates a logger writing to w.
func New(w io.Writer, opts Options) (*charmlog.Logger, error) {
	level := charmlog.InfoLevel
	if opts.Level != "" {
		var err error
		level, err = charmlog.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
		}
	}

	var formatter charmlog.Formatter
	switch strings.ToLower(opts.Format) {
	case "", "text":
		formatter = charmlog.TextFormatter
	case "logfmt":
		formatter = charmlog.LogfmtFormatter
	case "json":
		formatter = charmlog.JSONFormatter
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	return charmlog.NewWithOptions(w, charmlog.Options{
		Level:           level,
		Prefix:          opts.Prefix,
		Formatter:       formatter,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() *charmlog.Logger {
	return charmlog.New(io.Discard)
}

// OpenStateFile opens (appending) the named log file under the XDG state
// directory, creating parent directories as needed.
func OpenStateFile(name string) (*os.File, error) {
	path, err := xdg.StateFile(name)
	if err != nil {
		return nil, fmt.Errorf("resolve log path: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
