package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options paramètres de construction du logger
type Options struct {
	Environment string
	Version     string
	Level       string
	Format      string // "json" ou "text", vide = selon environnement
	File        string
	MaxSizeMB   int
	MaxBackups  int
	MaxAgeDays  int
}

// New construit le logger slog de l'application.
// Sortie standard toujours, plus un fichier avec rotation si File est renseigné.
func New(opts Options) *slog.Logger {
	return NewWithWriter(opts, os.Stdout)
}

// NewWithWriter permet d'injecter la sortie principale (tests)
func NewWithWriter(opts Options, out io.Writer) *slog.Logger {
	writers := []io.Writer{out}

	if opts.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		})
	}

	isDev := opts.Environment == "development"
	handlerOpts := &slog.HandlerOptions{
		Level:     ParseLevel(opts.Level),
		AddSource: isDev,
	}

	w := io.MultiWriter(writers...)

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") || (opts.Format == "" && !isDev) {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(handler).With(
		slog.String("service", "pharma-prep-core"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Environment),
	)
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
