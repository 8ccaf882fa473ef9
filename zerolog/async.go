package izerolog

import (
	"io"
	"time"

	"github.com/joeycumines/go-logglobal"
	"github.com/joeycumines/logiface"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"
)

// AsyncConfig models optional configuration, for NewAsync.
type AsyncConfig struct {
	// OnMissed is called with the number of events dropped, if the buffer
	// overflowed. Dropped events are otherwise silent.
	OnMissed func(missed int)

	// Size is the number of events the buffer holds.
	// **Defaults to 1000, if <= 0, or AsyncConfig is nil.**
	Size int

	// PollInterval is the interval at which the buffer is polled. If <= 0,
	// the reader will instead be woken by each write.
	PollInterval time.Duration
}

// NewAsync initializes a zerolog logger that writes to w via a non-blocking
// ring buffer (see zerolog/diode), returning it as a logiface logger, and
// the guard that flushes the buffer.
//
// Unlike the Writer of the async package, writes never block, and events
// are dropped if the buffer is full. The guard will not close w.
//
// Example:
//
//	logglobal.SetWithGuard(izerolog.NewAsync(os.Stderr, nil))
func NewAsync(w io.Writer, config *AsyncConfig, options ...logiface.Option[*Event]) (*logglobal.Logger, logglobal.FlushGuard) {
	var (
		size         = 1000
		pollInterval time.Duration
		alerter      = diode.Alerter(func(int) {})
	)
	if config != nil {
		if config.Size > 0 {
			size = config.Size
		}
		if config.PollInterval > 0 {
			pollInterval = config.PollInterval
		}
		if config.OnMissed != nil {
			alerter = config.OnMissed
		}
	}

	// the diode writer closes its underlying writer, if it's an io.Closer
	writer := diode.NewWriter(struct{ io.Writer }{w}, size, pollInterval, alerter)

	options = append([]logiface.Option[*Event]{L.WithZerolog(zerolog.New(writer))}, options...)

	return L.New(options...).Logger(), writer
}
