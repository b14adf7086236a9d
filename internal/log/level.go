package log

import (
	"fmt"
	"log/slog"
)

// Level is a log level. It extends [slog.Level] with a Trace level
// below Debug and a Fatal level above Error.
type Level int

// Recognized levels, spaced like slog's own levels so that values in
// between (e.g. from [slog.LevelVar]) compare sensibly.
const (
	LevelTrace Level = Level(slog.LevelDebug - 4)
	LevelDebug Level = Level(slog.LevelDebug)
	LevelInfo  Level = Level(slog.LevelInfo)
	LevelWarn  Level = Level(slog.LevelWarn)
	LevelError Level = Level(slog.LevelError)
	LevelFatal Level = Level(slog.LevelError + 4)
)

// Levels lists every recognized level, in ascending severity order.
var Levels = []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal}

// Level converts to the underlying [slog.Level].
func (l Level) Level() slog.Level { return slog.Level(l) }

// String renders the level's name, or, for an unrecognized level,
// delegates to [slog.Level]'s "BASE+offset" rendering.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	default:
		return l.Level().String()
	}
}

// ByLevel holds one value of type T per recognized [Level].
type ByLevel[T any] struct {
	Trace, Debug, Info, Warn, Error, Fatal T
}

// Get returns the value stored for level, panicking if level is not
// one of the six recognized levels.
func (b ByLevel[T]) Get(level Level) T {
	switch level {
	case LevelTrace:
		return b.Trace
	case LevelDebug:
		return b.Debug
	case LevelInfo:
		return b.Info
	case LevelWarn:
		return b.Warn
	case LevelError:
		return b.Error
	case LevelFatal:
		return b.Fatal
	default:
		panic(fmt.Sprintf("log: unrecognized level %v", level))
	}
}
