package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// setupLogger builds the run logger: human-readable console output plus a
// timestamped per-run log file under logDir. The returned closer flushes
// the file; a failure to open the file degrades to console-only logging.
func setupLogger(verbose bool, logDir string) (zerolog.Logger, func(), error) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}

	writers := []io.Writer{console}
	closer := func() {}

	if logDir != "" {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return zerolog.Logger{}, nil, fmt.Errorf("create log dir: %w", err)
		}

		name := fmt.Sprintf("sync_%s.log", time.Now().Format("20060102_150405"))
		file, err := os.Create(filepath.Join(logDir, name))
		if err == nil {
			writers = append(writers, file)
			closer = func() { _ = file.Close() }
		}
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Str("app", "fitsync").
		Logger()
	log.Logger = logger

	return logger, closer, nil
}
