package logger

import (
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vit0-9/imagefetch_api/pkg/config"
)

// New builds the application logger from cfg. Console output always goes to
// stderr; a rotating file sink is added when cfg.File is set. The standard
// library logger is redirected into the result.
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	asJSON := strings.EqualFold(cfg.Format, "json")
	writers := []io.Writer{consoleWriter(os.Stderr, asJSON, false)}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return zerolog.Nop(), err
		}
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    orDefault(cfg.MaxSizeMB, 100),
			MaxBackups: orDefault(cfg.MaxBackups, 3),
			LocalTime:  true,
		}
		writers = append(writers, consoleWriter(rotating, asJSON, true))
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()

	stdlog.SetOutput(logger)
	stdlog.SetFlags(0)

	return logger, nil
}

func consoleWriter(out io.Writer, asJSON, noColor bool) io.Writer {
	if asJSON {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
