package logglobal

type (
	// FlushGuard models an obligation to deliver any events already accepted
	// by an asynchronous sink. Close must block until that has happened.
	//
	// A Registry calls Close exactly once, on the goroutine that replaced or
	// cleared the logger installed with the guard. Panics are not recovered.
	FlushGuard interface {
		Close() error
	}

	// GuardFunc implements FlushGuard.
	GuardFunc func() error
)

var (
	// compile time assertions

	_ FlushGuard = GuardFunc(nil)
)

func (x GuardFunc) Close() error { return x() }

// releaseGuard closes guard, reporting any error via logger, which is the
// logger that superseded the guard's own.
func releaseGuard(logger *Logger, guard FlushGuard) {
	if err := guard.Close(); err != nil {
		logger.Err().
			Err(err).
			Log(`logglobal: failed to release flush guard`)
	}
}
