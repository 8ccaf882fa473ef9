// Package logglobal provides a process-wide logiface logger, which may be
// atomically replaced at runtime, freeing call sites from passing a
// [logiface.Logger] through every function.
//
// Reads (every log call) are lock-free, via [Borrow], which loads the current
// logger from an atomic pointer. Configuration ([Set], [SetWithGuard],
// [Clear]) is expected to be rare, e.g. during startup and shutdown.
//
// Until a logger is set, and after [Clear], every call site logs to
// [Discard], which drops everything.
//
// Asynchronous sinks may be installed alongside a [FlushGuard], which will be
// closed (flushing the sink) once the logger is replaced or cleared. A typical
// program looks like:
//
//	func main() {
//		logglobal.SetWithGuard(izerolog.NewAsync(os.Stderr, nil))
//		defer logglobal.Clear() // flushes
//
//		logglobal.Info().Str(`addr`, addr).Log(`listening`)
//	}
//
// Existing code using log/slog, or the standard log package, may be
// redirected to the current logger using [RedirectStdLog]. The logrus
// standard logger may be redirected using the ilogrus package.
//
// Not advised for use in libraries.
package logglobal
