package relay

import (
	"fmt"
	"io"

	"printer-relay/pkg/sink"
)

const chunkSize = 4096

// Run reads r until EOF and feeds every chunk to s, blocking on each
// write. It returns the number of bytes handed to the sink; the first read
// or write error aborts the run, and recovery is the caller's problem.
func Run(r io.Reader, s sink.Sink) (int64, error) {
	buf := make([]byte, chunkSize)
	var total int64
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := s.Write(buf[:n]); werr != nil {
				return total, werr
			}
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, fmt.Errorf("read input: %w", err)
		}
	}
}
