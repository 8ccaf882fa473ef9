package logglobal

import (
	"github.com/joeycumines/logiface"
)

// Build returns a builder for the given level, using the current logger. It
// returns nil if the level is disabled, which is safe to use.
//
// The builder must be used immediately, i.e. finalized using one of its Log
// methods, or released.
func Build(level logiface.Level) *logiface.Builder[logiface.Event] {
	return Borrow().Build(level)
}

// Log directly logs an event, using the current logger, without the fluent
// builder pattern. Returns [logiface.ErrDisabled] if the event was not
// written, e.g. if the current logger is Discard.
func Log(level logiface.Level, modifier logiface.Modifier[logiface.Event]) error {
	return Borrow().Log(level, modifier)
}

// Crit is an alias for Build(logiface.LevelCritical).
func Crit() *logiface.Builder[logiface.Event] { return Borrow().Crit() }

// Err is an alias for Build(logiface.LevelError).
func Err() *logiface.Builder[logiface.Event] { return Borrow().Err() }

// Warning is an alias for Build(logiface.LevelWarning).
func Warning() *logiface.Builder[logiface.Event] { return Borrow().Warning() }

// Notice is an alias for Build(logiface.LevelNotice).
func Notice() *logiface.Builder[logiface.Event] { return Borrow().Notice() }

// Info is an alias for Build(logiface.LevelInformational).
func Info() *logiface.Builder[logiface.Event] { return Borrow().Info() }

// Debug is an alias for Build(logiface.LevelDebug).
func Debug() *logiface.Builder[logiface.Event] { return Borrow().Debug() }

// Trace is an alias for Build(logiface.LevelTrace).
func Trace() *logiface.Builder[logiface.Event] { return Borrow().Trace() }
