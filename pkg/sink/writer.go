package sink

import "io"

// WriterSink adapts any io.Writer to the Sink contract, so in-memory
// buffers, already-open file handles and test doubles can stand in for
// hardware. It also covers the "adopt an open file" case: wrap the handle
// instead of going through NewFileSink.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink wraps an already-open writer. The sink does not take
// ownership unless the writer is also an io.Closer, in which case Close
// forwards to it.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

type flusher interface {
	Flush() error
}

// Flush forwards to the wrapped writer when it buffers (bufio.Writer and
// friends); otherwise there is nothing to do.
func (s *WriterSink) Flush() error {
	if f, ok := s.w.(flusher); ok {
		return f.Flush()
	}
	return nil
}

func (s *WriterSink) Close() error {
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
