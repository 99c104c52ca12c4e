package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level slog.Level
	// File, when set, receives a copy of every record in a size-rotated file.
	File string
}

// New builds the JSON logger. The returned closer releases the log file and
// is a no-op when no file is configured.
func New(stdout io.Writer, opts Options) (*slog.Logger, io.Closer, error) {
	if stdout == nil {
		stdout = os.Stdout
	}

	w := stdout
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, err
		}
		fileWriter := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		w = io.MultiWriter(stdout, fileWriter)
		closer = fileWriter
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: opts.Level,
	}))
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
