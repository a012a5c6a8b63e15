package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// InitLogger configura slog como logger por defecto y lo devuelve.
func InitLogger(app AppConfig) *slog.Logger {
	return NewLogger(os.Stdout, app)
}

// NewLogger arma el logger JSON sobre w y también lo deja como default.
func NewLogger(w io.Writer, app AppConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(app.LogLevel)}
	if app.Env != "production" {
		opts.ReplaceAttr = replaceTimeAttr
		opts.AddSource = true
	}

	logger := slog.New(slog.NewJSONHandler(w, opts))
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
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

func replaceTimeAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.String("time", a.Value.Time().Local().Format("2006-01-02 15:04:05"))
	}
	return a
}
