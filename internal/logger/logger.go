package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Mode picks a handler preset.
type Mode uint8

const (
	ModeDev Mode = iota
	ModeProd
	ModeSilence
)

// ParseMode maps the config spelling of a mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "dev":
		return ModeDev, nil
	case "prod":
		return ModeProd, nil
	case "silence":
		return ModeSilence, nil
	}
	return ModeDev, fmt.Errorf("unknown log mode %q", s)
}

func (m Mode) String() string {
	switch m {
	case ModeDev:
		return "dev"
	case ModeProd:
		return "prod"
	case ModeSilence:
		return "silence"
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// New builds a logger for mode. A nil w writes dev logs to stderr and prod
// logs to stdout.
func New(mode Mode, w io.Writer) *slog.Logger {
	return slog.New(buildHandler(mode, w))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return New(ModeSilence, nil)
}

func buildHandler(mode Mode, w io.Writer) slog.Handler {
	switch mode {
	case ModeProd:
		if w == nil {
			w = os.Stdout
		}
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	case ModeSilence:
		return slog.NewTextHandler(io.Discard, nil)
	default:
		if w == nil {
			w = os.Stderr
		}
		return slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}
}
