package async

import (
	"io"

	"github.com/joeycumines/go-logglobal"
	"github.com/joeycumines/stumpy"
)

var (
	// compile time assertions

	_ logglobal.FlushGuard = (*Writer)(nil)
	_ io.WriteCloser       = (*Writer)(nil)
)

// NewLogger initializes a JSON logger that writes to w, via a new Writer,
// configured using config. The returned Writer must be closed to flush, and
// should be used as the logger's guard, e.g.
//
//	logglobal.SetWithGuard(async.NewLogger(os.Stderr, nil))
//
// See also NewWriter, and stumpy.WithStumpy, which options are passed to.
func NewLogger(w io.Writer, config *Config, options ...stumpy.Option) (*logglobal.Logger, *Writer) {
	writer := NewWriter(w, config)
	options = append([]stumpy.Option{stumpy.WithWriter(writer)}, options...)
	return stumpy.L.New(stumpy.L.WithStumpy(options...)).Logger(), writer
}
