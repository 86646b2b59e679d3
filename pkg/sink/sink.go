package sink

import "io"

// Sink is a destination for raw printer bytes. Implementations in this
// package either accept the whole buffer and return its length, or return
// an error; a short count with a nil error never happens.
type Sink interface {
	io.Writer
	// Flush pushes any buffered bytes down to the transport.
	Flush() error
	// Close releases the underlying handle or connection.
	Close() error
}
