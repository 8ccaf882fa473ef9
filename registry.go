package logglobal

import (
	"sync"
	"sync/atomic"

	"github.com/joeycumines/logiface"
)

type (
	// Logger is the type of the logger stored by a Registry.
	//
	// Loggers for specific event types may be converted using their Logger
	// method, e.g. `stumpy.L.New(...).Logger()`.
	Logger = logiface.Logger[logiface.Event]

	// Registry stores a current Logger, and the FlushGuard (if any) installed
	// with it. The zero value is ready to use, and logs to Discard.
	//
	// Loads are lock-free. Stores of the logger and guard happen together,
	// under a mutex, which is only held for the pointer assignments. The
	// previous guard is closed after the mutex is released, by the goroutine
	// that replaced it.
	//
	// Readers are never blocked by writers, and may observe the new logger
	// before the previous guard has finished closing.
	//
	// A Registry must not be copied after first use.
	Registry struct {
		logger atomic.Pointer[Logger]
		mu     sync.Mutex
		guard  FlushGuard
	}
)

var (
	global Registry

	discard = logiface.New[logiface.Event]()
)

// Default returns the process-wide Registry, used by the package functions.
func Default() *Registry { return &global }

// Discard returns the logger that drops every event. It is the initial
// logger of every Registry, and is always the same instance.
func Discard() *Logger { return discard }

// Set replaces the current logger, closing any previously installed guard.
// A nil logger is equivalent to Discard.
func Set(logger *Logger) { global.Set(logger) }

// SetWithGuard replaces the current logger, installing guard alongside it,
// closing any previously installed guard. The guard will be closed when the
// logger is next replaced or cleared. A nil guard is equivalent to Set.
func SetWithGuard(logger *Logger, guard FlushGuard) { global.SetWithGuard(logger, guard) }

// Get returns the current logger, which may be retained. Subsequent calls to
// Set or Clear will not modify the returned logger.
func Get() *Logger { return global.Get() }

// Borrow returns the current logger, for immediate use, e.g. within a single
// log call. It doesn't allocate. Callers that need to hold on to the logger
// should use Get.
func Borrow() *Logger { return global.Borrow() }

// Clear resets to Discard, closing any previously installed guard.
func Clear() { global.Clear() }

// Set is the method equivalent of the package function of the same name.
func (x *Registry) Set(logger *Logger) { x.store(logger, nil) }

// SetWithGuard is the method equivalent of the package function of the same
// name.
func (x *Registry) SetWithGuard(logger *Logger, guard FlushGuard) { x.store(logger, guard) }

// Get is the method equivalent of the package function of the same name.
func (x *Registry) Get() *Logger { return x.load() }

// Borrow is the method equivalent of the package function of the same name.
func (x *Registry) Borrow() *Logger { return x.load() }

// Clear is the method equivalent of the package function of the same name.
func (x *Registry) Clear() { x.store(nil, nil) }

func (x *Registry) load() *Logger {
	if logger := x.logger.Load(); logger != nil {
		return logger
	}
	return discard
}

func (x *Registry) store(logger *Logger, guard FlushGuard) {
	if logger == nil {
		logger = discard
	}
	previous := x.swap(logger, guard)
	if previous != nil {
		releaseGuard(logger, previous)
	}
}

// swap performs the only mutation of the registry's state, pairing the
// logger and guard, returning the guard that must be released.
func (x *Registry) swap(logger *Logger, guard FlushGuard) (previous FlushGuard) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.logger.Store(logger)
	previous, x.guard = x.guard, guard
	return
}
