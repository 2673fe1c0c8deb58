package logger

import (
	"log/slog"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var Module = fx.Options(
	fx.Provide(NewMiddleware),
	fx.Invoke(SetDefault),
)

// SetDefault installe le logger comme logger slog global
func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}

// FxLogger redirige les événements fx vers slog
func FxLogger(logger *slog.Logger) fxevent.Logger {
	l := &fxevent.SlogLogger{Logger: logger.With("component", "fx")}
	l.UseLogLevel(slog.LevelDebug)
	return l
}
