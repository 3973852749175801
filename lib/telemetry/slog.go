package telemetry

import (
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

type SlogOptions struct {
	Debug bool
	// writes json logs to this file in addition to stderr, rotated once it
	// grows past 10 MB
	File string
}

// InitSlog installs the default slog logger, it returns a function that
// closes the log file if there is one.
func InitSlog(opts SlogOptions) func() error {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	if opts.File == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, handlerOpts)))
		return func() error { return nil }
	}

	file := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    10,
		MaxBackups: 3,
		Compress:   true,
	}
	slog.SetDefault(slog.New(newTeeHandler(
		slog.NewTextHandler(os.Stderr, handlerOpts),
		slog.NewJSONHandler(file, handlerOpts),
	)))
	return file.Close
}
