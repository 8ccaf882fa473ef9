package ilogrus

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"sync/atomic"

	"github.com/joeycumines/go-logglobal"
	"github.com/sirupsen/logrus"
)

type (
	// RedirectOption configures RedirectStandardLogger, or NewHook.
	RedirectOption func(c *hookConfig)

	hookConfig struct {
		registry  *logglobal.Registry
		callerKey string
		minLevel  logrus.Level
	}

	// Hook is a logrus.Hook that forwards each entry to the logger that is
	// current at the time of the call. Instances must be initialized using
	// NewHook.
	Hook struct {
		config hookConfig
	}
)

var (
	// compile time assertions

	_ logrus.Hook = (*Hook)(nil)
)

// redirected is the logrus standard logger, once RedirectStandardLogger has
// succeeded.
var redirected atomic.Pointer[logrus.Logger]

// WithRegistry configures the Registry that entries are forwarded to,
// defaulting to the one returned by logglobal.Default.
func WithRegistry(registry *logglobal.Registry) RedirectOption {
	return func(c *hookConfig) {
		c.registry = registry
	}
}

// WithMinLevel configures the least severe logrus level that is forwarded,
// defaulting to logrus.TraceLevel.
func WithMinLevel(level logrus.Level) RedirectOption {
	return func(c *hookConfig) {
		c.minLevel = level
	}
}

// WithCallerKey configures the field used for the "file:line" of the call
// site, defaulting to "caller". It is only available if the logrus logger
// has ReportCaller enabled. An empty key disables the field.
func WithCallerKey(key string) RedirectOption {
	return func(c *hookConfig) {
		c.callerKey = key
	}
}

// NewHook initializes a Hook, which may be added to any logrus logger,
// using logrus.Logger.AddHook.
func NewHook(options ...RedirectOption) *Hook {
	h := Hook{config: hookConfig{
		callerKey: `caller`,
		minLevel:  logrus.TraceLevel,
	}}
	for _, o := range options {
		o(&h.config)
	}
	if h.config.registry == nil {
		h.config.registry = logglobal.Default()
	}
	return &h
}

// RedirectStandardLogger binds the logrus standard logger (see
// logrus.StandardLogger) to the registry. A hook is added, the level is set
// to the configured minimum, and the logger's own output is discarded.
// Registry.Clear is registered as a logrus exit handler, so pending events
// are flushed before logrus.Fatal exits.
//
// Only one call per process may succeed. Subsequent calls return an error
// wrapping logglobal.ErrAlreadyRedirected, leaving the first installation in
// place.
//
// Loggers created using WithLogrus, that write to the logrus standard
// logger, are disabled once it is redirected.
func RedirectStandardLogger(options ...RedirectOption) error {
	std := logrus.StandardLogger()
	if !redirected.CompareAndSwap(nil, std) {
		return fmt.Errorf(`%w: logrus`, logglobal.ErrAlreadyRedirected)
	}
	hook := NewHook(options...)
	std.AddHook(hook)
	std.SetLevel(hook.config.minLevel)
	std.SetOutput(io.Discard)
	logrus.RegisterExitHandler(hook.config.registry.Clear)
	return nil
}

func (x *Hook) Levels() []logrus.Level {
	levels := make([]logrus.Level, 0, len(logrus.AllLevels))
	for _, level := range logrus.AllLevels {
		if level <= x.config.minLevel {
			levels = append(levels, level)
		}
	}
	return levels
}

// Fire forwards the entry, and never returns an error. Entries that were
// written by a Logger (see WithLogrus) are skipped.
func (x *Hook) Fire(entry *logrus.Entry) error {
	if entry.Level > x.config.minLevel {
		return nil
	}
	if entry.Context != nil && entry.Context.Value(forwardedKey{}) != nil {
		return nil
	}

	b := x.config.registry.Borrow().Build(toLogifaceLevel(entry.Level))
	if b == nil {
		return nil
	}

	if x.config.callerKey != `` && entry.Caller != nil {
		b.Str(x.config.callerKey, entry.Caller.File+`:`+strconv.Itoa(entry.Caller.Line))
	}

	for _, k := range slices.Sorted(maps.Keys(entry.Data)) {
		v := entry.Data[k]
		if err, ok := v.(error); ok && k == logrus.ErrorKey {
			b.Err(err)
		} else {
			b.Any(k, v)
		}
	}

	b.Log(entry.Message)

	return nil
}
