// Package logging configures the global slog logger.
//
// All logs go to stderr: stdout is reserved for the hook protocol line.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup configures the global slog logger.
// If debug is true the level is Debug, otherwise Info. When jsonFormat is
// true a JSON handler is used, for feeding hook logs into log pipelines.
// Output goes to the provided writer (defaults to os.Stderr if nil).
func Setup(debug bool, jsonFormat bool, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if jsonFormat {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}
