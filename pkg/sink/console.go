package sink

import (
	"os"
)

// ConsoleSink writes raw bytes to stdout, useful for inspecting encoder
// output without hardware attached.
type ConsoleSink struct{}

// NewConsoleSink creates a new ConsoleSink.
func NewConsoleSink() *ConsoleSink {
	return &ConsoleSink{}
}

func (s *ConsoleSink) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (s *ConsoleSink) Flush() error {
	return nil
}

func (s *ConsoleSink) Close() error {
	return nil
}
