// Package async implements an asynchronous sink, for use with the logglobal
// package, decoupling the caller from the latency of the underlying writer.
//
// The Writer is the flush guard for loggers that write to it. Install both
// using logglobal.SetWithGuard, and pending events will be written when the
// logger is next replaced or cleared.
package async
