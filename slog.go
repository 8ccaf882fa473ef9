package logglobal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"math"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
	"go.opentelemetry.io/otel/trace"
)

type (
	// RedirectOption configures the slog.Handler returned by NewSlogHandler,
	// and installed by RedirectStdLog.
	RedirectOption func(c *redirectConfig)

	redirectConfig struct {
		registry    *Registry
		limiter     *catrate.Limiter
		callerKey   string
		functionKey string
		minLevel    slog.Level
		traceFields bool
	}

	// slogHandler implements slog.Handler, forwarding each record to the
	// logger that is current at the time of the call.
	slogHandler struct {
		config *redirectConfig
		attrs  []prefixedAttr
		prefix string
	}

	prefixedAttr struct {
		prefix string
		attr   slog.Attr
	}

	// callSite is the rate limiting category, omitting the PC, which may
	// differ for the same line, e.g. due to inlining.
	callSite struct {
		File string
		Line int
	}
)

var (
	// ErrAlreadyRedirected indicates that a legacy logging facade, which may
	// only be bound once per process, has already been redirected.
	ErrAlreadyRedirected = errors.New(`logglobal: already redirected`)

	// compile time assertions

	_ slog.Handler = (*slogHandler)(nil)
)

var stdRedirected atomic.Bool

// WithRegistry configures the Registry that records are forwarded to,
// defaulting to the one returned by Default.
func WithRegistry(registry *Registry) RedirectOption {
	return func(c *redirectConfig) {
		c.registry = registry
	}
}

// WithMinLevel configures the minimum level, below which records are
// dropped before reaching the current logger. Levels without an slog
// equivalent collapse, e.g. logiface.LevelCritical behaves as
// logiface.LevelError. A disabled level drops everything. Trace, the default,
// accepts every record, including those below LevelTrace, as do custom levels.
func WithMinLevel(level logiface.Level) RedirectOption {
	return func(c *redirectConfig) {
		switch {
		case !level.Enabled():
			c.minLevel = math.MaxInt
		case level >= logiface.LevelTrace:
			c.minLevel = math.MinInt
		default:
			c.minLevel = toSlogLevel(level)
		}
	}
}

// WithCallerKey configures the field used for the "file:line" of the call
// site, defaulting to "caller". An empty key disables the field.
func WithCallerKey(key string) RedirectOption {
	return func(c *redirectConfig) {
		c.callerKey = key
	}
}

// WithFunctionKey configures the field used for the fully qualified function
// name of the call site, which includes the package path. Defaults to
// "function". An empty key disables the field.
func WithFunctionKey(key string) RedirectOption {
	return func(c *redirectConfig) {
		c.functionKey = key
	}
}

// WithCategoryRateLimits limits the number of records accepted per call
// site (file and line), within each of the given windows. Records without a
// call site (see slog.Record.PC) share a single category. Panics if the
// rates are invalid, see catrate.NewLimiter.
func WithCategoryRateLimits(rates map[time.Duration]int) RedirectOption {
	limiter := catrate.NewLimiter(rates)
	return func(c *redirectConfig) {
		c.limiter = limiter
	}
}

// WithTraceContext enables adding the "trace_id" and "span_id" fields, when
// the context passed to slog carries a valid OpenTelemetry span context.
func WithTraceContext(enabled bool) RedirectOption {
	return func(c *redirectConfig) {
		c.traceFields = enabled
	}
}

// RedirectStdLog installs a handler as the default log/slog logger, which
// forwards every record to the current logger of the registry, resolved at
// the time of each call. As a side effect of slog.SetDefault, output from
// the standard log package is forwarded as well, at slog.LevelInfo. The
// log.Lshortfile flag is set prior, so slog captures the call site of the
// standard log package, then clears the flags.
//
// Only one call per process may succeed. Subsequent calls return an error
// wrapping ErrAlreadyRedirected, leaving the first installation in place.
func RedirectStdLog(options ...RedirectOption) error {
	if !stdRedirected.CompareAndSwap(false, true) {
		return fmt.Errorf(`%w: log/slog`, ErrAlreadyRedirected)
	}
	log.SetFlags(log.Flags() | log.Lshortfile)
	slog.SetDefault(slog.New(NewSlogHandler(options...)))
	return nil
}

// NewSlogHandler returns the handler that RedirectStdLog would install,
// without installing it.
func NewSlogHandler(options ...RedirectOption) slog.Handler {
	c := redirectConfig{
		callerKey:   `caller`,
		functionKey: `function`,
		minLevel:    math.MinInt,
	}
	for _, o := range options {
		o(&c)
	}
	if c.registry == nil {
		c.registry = Default()
	}
	return &slogHandler{config: &c}
}

func (x *slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= x.config.minLevel
}

func (x *slogHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level < x.config.minLevel {
		return nil
	}

	var frame runtime.Frame
	if r.PC != 0 {
		frame, _ = runtime.CallersFrames([]uintptr{r.PC}).Next()
	}

	if x.config.limiter != nil {
		if _, ok := x.config.limiter.Allow(callSite{File: frame.File, Line: frame.Line}); !ok {
			return nil
		}
	}

	b := x.config.registry.Borrow().Build(toLogifaceLevel(r.Level))
	if b == nil {
		return nil
	}

	if x.config.callerKey != `` && frame.File != `` {
		b.Str(x.config.callerKey, frame.File+`:`+strconv.Itoa(frame.Line))
	}
	if x.config.functionKey != `` && frame.Function != `` {
		b.Str(x.config.functionKey, frame.Function)
	}

	if x.config.traceFields {
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			b.Str(`trace_id`, sc.TraceID().String()).
				Str(`span_id`, sc.SpanID().String())
		}
	}

	for _, a := range x.attrs {
		addSlogAttr(b, a.prefix, a.attr)
	}
	r.Attrs(func(a slog.Attr) bool {
		addSlogAttr(b, x.prefix, a)
		return true
	})

	b.Log(r.Message)

	return nil
}

func (x *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return x
	}
	h := *x
	h.attrs = make([]prefixedAttr, 0, len(x.attrs)+len(attrs))
	h.attrs = append(h.attrs, x.attrs...)
	for _, a := range attrs {
		h.attrs = append(h.attrs, prefixedAttr{prefix: x.prefix, attr: a})
	}
	return &h
}

func (x *slogHandler) WithGroup(name string) slog.Handler {
	if name == `` {
		return x
	}
	h := *x
	h.prefix = x.prefix + name + `.`
	return &h
}

// addSlogAttr adds a field per attribute, flattening groups into dot
// separated keys, and ignoring empty attributes, per the slog.Handler rules.
func addSlogAttr(b *logiface.Builder[logiface.Event], prefix string, a slog.Attr) {
	v := a.Value.Resolve()

	if v.Kind() == slog.KindGroup {
		attrs := v.Group()
		if len(attrs) == 0 {
			return
		}
		if a.Key != `` {
			prefix += a.Key + `.`
		}
		for _, a := range attrs {
			addSlogAttr(b, prefix, a)
		}
		return
	}

	if a.Key == `` {
		return
	}
	key := prefix + a.Key

	switch v.Kind() {
	case slog.KindString:
		b.Str(key, v.String())
	case slog.KindInt64:
		b.Int64(key, v.Int64())
	case slog.KindUint64:
		b.Uint64(key, v.Uint64())
	case slog.KindFloat64:
		b.Float64(key, v.Float64())
	case slog.KindBool:
		b.Bool(key, v.Bool())
	case slog.KindDuration:
		b.Dur(key, v.Duration())
	case slog.KindTime:
		b.Time(key, v.Time())
	default:
		if err, ok := v.Any().(error); ok {
			b.Str(key, err.Error())
		} else {
			b.Any(key, v.Any())
		}
	}
}
