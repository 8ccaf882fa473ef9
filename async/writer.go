package async

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/joeycumines/go-microbatch"
)

type (
	// Config models optional configuration, for NewWriter.
	Config struct {
		// OnError is called with any error returned by the underlying writer.
		// Errors are dropped if nil.
		//
		// WARNING: Logging from OnError, to a logger that writes to the same
		// Writer, may deadlock.
		OnError func(err error)

		// MaxSize restricts the maximum number of writes per batch, if
		// positive. Writes block while a full batch is pending.
		// **Defaults to 64, if 0, or Config is nil.**
		MaxSize int

		// FlushInterval specifies the maximum duration before an "incomplete"
		// batch is written, if positive.
		// **Defaults to 50ms, if 0, or Config is nil.**
		FlushInterval time.Duration
	}

	// Writer is an io.Writer that copies each write, passing them to an
	// underlying writer in batches, from a background goroutine. Batches are
	// written in order, one at a time, each as a single Write call. Writes
	// are never dropped, unless the Writer is forcibly shut down.
	//
	// Writer implements logglobal.FlushGuard, via Close.
	// Instances must be initialized using the NewWriter factory.
	Writer struct {
		batcher *microbatch.Batcher[[]byte]
	}
)

var (
	// ErrClosed is returned by Writer.Write after the Writer is closed.
	ErrClosed = errors.New(`async: writer closed`)
)

// NewWriter initializes a new Writer, using the provided Config. The config
// may be nil. A panic will occur if w is nil, or if both MaxSize and
// FlushInterval are disabled.
//
// The Writer.Close method and/or Writer.Shutdown method must be called when
// the Writer is no longer needed, to flush pending writes.
func NewWriter(w io.Writer, config *Config) *Writer {
	if w == nil {
		panic(`async: nil writer`)
	}

	batcherConfig := microbatch.BatcherConfig{
		MaxSize: 64,
		// batches must be written in order
		MaxConcurrency: 1,
	}
	var onError func(err error)
	if config != nil {
		onError = config.OnError
		if config.MaxSize != 0 {
			batcherConfig.MaxSize = config.MaxSize
		}
		batcherConfig.FlushInterval = config.FlushInterval
	}

	return &Writer{batcher: microbatch.NewBatcher(&batcherConfig, func(ctx context.Context, jobs [][]byte) error {
		if err := ctx.Err(); err != nil {
			// forcibly shut down
			return err
		}
		if _, err := w.Write(joinWrites(jobs)); err != nil {
			if onError != nil {
				onError(err)
			}
			return err
		}
		return nil
	})}
}

// Write copies p, scheduling it to be written. It blocks while a full batch
// is pending, and returns ErrClosed if the Writer has been stopped.
func (x *Writer) Write(p []byte) (int, error) {
	b := make([]byte, len(p))
	copy(b, p)
	if _, err := x.batcher.Submit(context.Background(), b); err != nil {
		return 0, ErrClosed
	}
	return len(p), nil
}

// Shutdown will immediately prevent further writes, then wait for all
// pending writes to be written. An error will be returned if ctx is canceled
// prior to this, causing a forced shutdown, which may discard pending
// writes.
func (x *Writer) Shutdown(ctx context.Context) error {
	return x.batcher.Shutdown(ctx)
}

// Close prevents further writes, blocking until all pending writes have
// been written. It is safe to call multiple times.
func (x *Writer) Close() error {
	return x.Shutdown(context.Background())
}

func joinWrites(jobs [][]byte) []byte {
	if len(jobs) == 1 {
		return jobs[0]
	}
	var n int
	for _, job := range jobs {
		n += len(job)
	}
	b := make([]byte, 0, n)
	for _, job := range jobs {
		b = append(b, job...)
	}
	return b
}
