// Package ilogrus implements support for using github.com/sirupsen/logrus as
// the logger installed via github.com/joeycumines/go-logglobal, and for
// forwarding the logrus standard logger to it.
package ilogrus

import (
	"context"
	"sync"

	"github.com/joeycumines/logiface"
	"github.com/sirupsen/logrus"
)

type (
	Event struct {
		Entry *logrus.Entry
		lvl   logiface.Level
		//lint:ignore U1000 embedded for it's methods
		unimplementedEvent
	}

	Logger struct {
		Logrus *logrus.Logger
	}

	forwardedKey struct{}

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

	// forwardedContext marks entries written by Logger, which Hook skips
	forwardedContext = context.WithValue(context.Background(), forwardedKey{}, true)

	eventPool = sync.Pool{New: func() any {
		return &Event{Entry: &logrus.Entry{
			Data: make(logrus.Fields, 6),
		}}
	}}

	// compile time assertions

	_ logiface.Event                 = (*Event)(nil)
	_ logiface.EventFactory[*Event]  = (*Logger)(nil)
	_ logiface.Writer[*Event]        = (*Logger)(nil)
	_ logiface.EventReleaser[*Event] = (*Logger)(nil)
)

// WithLogrus configures a logiface logger to use a logrus logger.
// Will panic if the logger is nil.
//
// Entries written by the logger are never forwarded by a Hook, which would
// otherwise recurse, if the logger carries a Hook into a registry that the
// logger is installed in. If the logger is the logrus standard logger, and
// it has been redirected using RedirectStandardLogger, all events are
// disabled, as its output is discarded.
//
// See also LoggerFactory.WithLogrus and L (an alias for LoggerFactory{}).
func WithLogrus(logger *logrus.Logger) logiface.Option[*Event] {
	if logger == nil {
		panic(`ilogrus: nil logger`)
	}
	l := Logger{Logrus: logger}
	return L.WithOptions(
		L.WithWriter(&l),
		L.WithEventFactory(&l),
		L.WithEventReleaser(&l),
	)
}

// WithLogrus is an alias of the package function of the same name.
func (LoggerFactory) WithLogrus(logger *logrus.Logger) logiface.Option[*Event] {
	return WithLogrus(logger)
}

func (x *Event) Level() logiface.Level {
	if x != nil {
		return x.lvl
	}
	return logiface.LevelDisabled
}

func (x *Event) AddField(key string, val any) {
	// merged into a new entry, in Write
	x.Entry.Data[key] = val
}

func (x *Event) AddMessage(msg string) bool {
	x.Entry.Message = msg
	return true
}

func (x *Event) AddError(err error) bool {
	// consistent with logrus.Entry.WithError
	x.Entry.Data[logrus.ErrorKey] = err
	return true
}

func (x *Logger) NewEvent(level logiface.Level) *Event {
	event := eventPool.Get().(*Event)
	event.lvl = level
	event.Entry.Logger = x.Logrus
	event.Entry.Context = forwardedContext
	return event
}

func (x *Logger) ReleaseEvent(event *Event) {
	clear(event.Entry.Data)
	*event.Entry = logrus.Entry{Data: event.Entry.Data}
	*event = Event{Entry: event.Entry}
	eventPool.Put(event)
}

func (x *Logger) Write(event *Event) error {
	logrusLevel, ok := toLogrusLevel(event.Level())
	if !ok || x.Logrus == redirected.Load() || !event.Entry.Logger.IsLevelEnabled(logrusLevel) {
		return logiface.ErrDisabled
	}

	// the pooled map must not escape, via hooks or formatters
	fields := event.Entry.Data
	event.Entry.Data = nil
	entry := event.Entry.WithFields(fields)
	event.Entry.Data = fields

	entry.Log(logrusLevel, event.Entry.Message)

	return nil
}

// toLogrusLevel maps logiface.Level to logrus.Level. Emergency maps to
// logrus.FatalLevel, as logrus.PanicLevel would panic.
//
// See also the recommended mappings documented on logiface.Level.
func toLogrusLevel(level logiface.Level) (logrus.Level, bool) {
	switch level {
	case logiface.LevelTrace:
		return logrus.TraceLevel, true
	case logiface.LevelDebug:
		return logrus.DebugLevel, true
	case logiface.LevelInformational:
		return logrus.InfoLevel, true
	case logiface.LevelNotice, logiface.LevelWarning:
		return logrus.WarnLevel, true
	case logiface.LevelError, logiface.LevelCritical:
		return logrus.ErrorLevel, true
	case logiface.LevelAlert, logiface.LevelEmergency:
		return logrus.FatalLevel, true
	default:
		return logrus.PanicLevel, false
	}
}

// toLogifaceLevel maps logrus.Level to logiface.Level, the inverse of
// toLogrusLevel, except that logrus.PanicLevel maps to Emergency.
func toLogifaceLevel(level logrus.Level) logiface.Level {
	switch level {
	case logrus.PanicLevel:
		return logiface.LevelEmergency
	case logrus.FatalLevel:
		return logiface.LevelAlert
	case logrus.ErrorLevel:
		return logiface.LevelError
	case logrus.WarnLevel:
		return logiface.LevelWarning
	case logrus.InfoLevel:
		return logiface.LevelInformational
	case logrus.DebugLevel:
		return logiface.LevelDebug
	default:
		return logiface.LevelTrace
	}
}
