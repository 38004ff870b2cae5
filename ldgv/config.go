package ldgv

import "io"

// Config is a function that configures a Runtime.
type Config func(rt *Runtime)

// WithTrace returns a Config toggling the diagnostic trace.  When
// enabled the runtime writes a line on entry and exit of every Eval
// call and on every channel send and receive.  Tracing has no effect
// on results.
func WithTrace(on bool) Config {
	return func(rt *Runtime) {
		rt.Trace = on
	}
}

// WithStderr returns a Config that makes the runtime write trace
// output to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(rt *Runtime) {
		rt.Stderr = w
	}
}
