package bootstrap

import (
	"log/slog"
	"os"
	"strings"

	"github.com/boolean-maybe/filterline/config"
)

// InitLogging routes slog to the log file in the cache dir at the configured level.
// The terminal belongs to the TUI, so nothing is logged to stdout or stderr;
// when the log file cannot be opened logging is discarded.
func InitLogging(cfg *config.Config) slog.Level {
	level := parseLogLevel(cfg.Logging.Level)

	//nolint:gosec // G302: 0644 is appropriate for a log file
	file, err := os.OpenFile(config.GetLogFile(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return level
	}

	handler := slog.NewTextHandler(file, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	slog.Info("logging initialized", "level", level.String(), "version", config.Version)
	return level
}

func parseLogLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
