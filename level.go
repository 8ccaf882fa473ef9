package logglobal

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/joeycumines/logiface"
)

// LevelTrace is the slog.Level that maps to logiface.LevelTrace. Any level
// below slog.LevelDebug is treated as trace.
const LevelTrace = slog.LevelDebug - 4

// ParseLevel parses a logiface.Level, accepting the keywords returned by
// logiface.Level.String, common aliases (e.g. "warn", "error", "fatal"), and
// integer values from -1 (disabled) to 127. Matching is case-insensitive. An
// empty string is an error.
func ParseLevel(s string) (logiface.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case `disabled`, `off`, `none`:
		return logiface.LevelDisabled, nil
	case `emerg`, `emergency`, `panic`:
		return logiface.LevelEmergency, nil
	case `alert`, `fatal`:
		return logiface.LevelAlert, nil
	case `crit`, `critical`:
		return logiface.LevelCritical, nil
	case `err`, `error`:
		return logiface.LevelError, nil
	case `warning`, `warn`:
		return logiface.LevelWarning, nil
	case `notice`:
		return logiface.LevelNotice, nil
	case `info`, `informational`:
		return logiface.LevelInformational, nil
	case `debug`:
		return logiface.LevelDebug, nil
	case `trace`:
		return logiface.LevelTrace, nil
	}
	if v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 8); err == nil && v >= int64(logiface.LevelDisabled) {
		return logiface.Level(v), nil
	}
	return logiface.LevelDisabled, fmt.Errorf(`logglobal: invalid level: %q`, s)
}

// toLogifaceLevel maps a legacy (slog) level to the structured level. Levels
// between the named slog levels round down, e.g. slog.LevelWarn+1 is
// logiface.LevelWarning.
func toLogifaceLevel(level slog.Level) logiface.Level {
	switch {
	case level >= slog.LevelError:
		return logiface.LevelError
	case level >= slog.LevelWarn:
		return logiface.LevelWarning
	case level >= slog.LevelInfo:
		return logiface.LevelInformational
	case level >= slog.LevelDebug:
		return logiface.LevelDebug
	default:
		return logiface.LevelTrace
	}
}

// toSlogLevel maps a structured level to the legacy (slog) level. This is
// lossy, e.g. logiface.LevelCritical becomes slog.LevelError. Custom levels
// (greater than trace) map to LevelTrace.
func toSlogLevel(level logiface.Level) slog.Level {
	switch level {
	case logiface.LevelEmergency, logiface.LevelAlert, logiface.LevelCritical, logiface.LevelError:
		return slog.LevelError
	case logiface.LevelWarning:
		return slog.LevelWarn
	case logiface.LevelNotice, logiface.LevelInformational:
		return slog.LevelInfo
	case logiface.LevelDebug:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}
