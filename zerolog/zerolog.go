// Package izerolog implements support for using github.com/rs/zerolog as the
// logger installed via github.com/joeycumines/go-logglobal.
package izerolog

import (
	"sync"
	"time"

	"github.com/joeycumines/logiface"
	"github.com/rs/zerolog"
)

type (
	Event struct {
		Z   *zerolog.Event
		msg string
		lvl logiface.Level
		//lint:ignore U1000 embedded for it's methods
		unimplementedEvent
	}

	Logger struct {
		Z zerolog.Logger
	}

	// LoggerFactory is provided as a convenience, embedding
	// logiface.LoggerFactory[*Event], and aliasing the option functions
	// implemented within this package.
	LoggerFactory struct {
		//lint:ignore U1000 embedded for it's methods
		baseLoggerFactory
	}

	//lint:ignore U1000 used to embed without exporting
	unimplementedEvent = logiface.UnimplementedEvent

	//lint:ignore U1000 used to embed without exporting
	baseLoggerFactory = logiface.LoggerFactory[*Event]
)

var (
	// L is a LoggerFactory, and may be used to configure a
	// logiface.Logger[*Event], using the implementations provided by this
	// package.
	L = LoggerFactory{}

	eventPool = sync.Pool{New: func() any { return new(Event) }}

	// compile time assertions

	_ logiface.Event                 = (*Event)(nil)
	_ logiface.EventFactory[*Event]  = (*Logger)(nil)
	_ logiface.Writer[*Event]        = (*Logger)(nil)
	_ logiface.EventReleaser[*Event] = (*Logger)(nil)
)

// WithZerolog configures a logiface logger to use a zerolog logger.
//
// See also LoggerFactory.WithZerolog and L (an alias for LoggerFactory{}).
func WithZerolog(logger zerolog.Logger) logiface.Option[*Event] {
	l := Logger{Z: logger}
	return L.WithOptions(
		L.WithWriter(&l),
		L.WithEventFactory(&l),
		L.WithEventReleaser(&l),
	)
}

// WithZerolog is an alias of the package function of the same name.
func (LoggerFactory) WithZerolog(logger zerolog.Logger) logiface.Option[*Event] {
	return WithZerolog(logger)
}

func (x *Event) Level() logiface.Level {
	if x != nil {
		return x.lvl
	}
	return logiface.LevelDisabled
}

func (x *Event) AddField(key string, val any) {
	x.Z.Interface(key, val)
}

func (x *Event) AddMessage(msg string) bool {
	x.msg = msg
	return true
}

func (x *Event) AddError(err error) bool {
	x.Z.Err(err)
	return true
}

func (x *Event) AddString(key string, val string) bool {
	x.Z.Str(key, val)
	return true
}

func (x *Event) AddInt(key string, val int) bool {
	x.Z.Int(key, val)
	return true
}

func (x *Event) AddFloat32(key string, val float32) bool {
	x.Z.Float32(key, val)
	return true
}

func (x *Event) AddTime(key string, val time.Time) bool {
	x.Z.Time(key, val)
	return true
}

func (x *Event) AddDuration(key string, val time.Duration) bool {
	x.Z.Dur(key, val)
	return true
}

func (x *Event) AddBool(key string, val bool) bool {
	x.Z.Bool(key, val)
	return true
}

func (x *Event) AddFloat64(key string, val float64) bool {
	x.Z.Float64(key, val)
	return true
}

func (x *Event) AddInt64(key string, val int64) bool {
	x.Z.Int64(key, val)
	return true
}

func (x *Event) AddUint64(key string, val uint64) bool {
	x.Z.Uint64(key, val)
	return true
}

// NewEvent returns nil if the level is disabled, including if it is
// disabled by the zerolog logger.
//
// Levels that would terminate the program, in zerolog, are logged using
// zerolog.Logger.WithLevel, and do not exit or panic.
func (x *Logger) NewEvent(level logiface.Level) *Event {
	var z *zerolog.Event
	switch level {
	case logiface.LevelTrace:
		z = x.Z.Trace()
	case logiface.LevelDebug:
		z = x.Z.Debug()
	case logiface.LevelInformational:
		z = x.Z.Info()
	case logiface.LevelNotice, logiface.LevelWarning:
		z = x.Z.Warn()
	case logiface.LevelError:
		z = x.Z.Error()
	case logiface.LevelCritical, logiface.LevelAlert:
		z = x.Z.WithLevel(zerolog.FatalLevel)
	case logiface.LevelEmergency:
		z = x.Z.WithLevel(zerolog.PanicLevel)
	default:
		if !level.Enabled() {
			return nil
		}
		// >= 9, translate to numeric levels in zerolog
		// (9 -> -2, 10 -> -3, etc)
		z = x.Z.WithLevel(zerolog.Level(7 - level))
	}
	if z == nil {
		return nil
	}
	event := eventPool.Get().(*Event)
	event.Z = z
	event.lvl = level
	return event
}

func (x *Logger) ReleaseEvent(event *Event) {
	if event != nil {
		*event = Event{}
		eventPool.Put(event)
	}
}

func (x *Logger) Write(event *Event) error {
	if event == nil || event.Z == nil {
		return logiface.ErrDisabled
	}
	event.Z.Msg(event.msg)
	// zerolog returns the event to its own pool
	event.Z = nil
	return nil
}
