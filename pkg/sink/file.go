package sink

import (
	"os"
)

// FileSink writes printer data to a file, creating it if necessary.
// Writes append, so repeated jobs against the same path accumulate.
type FileSink struct {
	file *os.File
}

// NewFileSink opens or creates the file at path for appending.
func NewFileSink(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FileSink{file: f}, nil
}

func (s *FileSink) Write(p []byte) (int, error) {
	return s.file.Write(p)
}

// Flush forces written bytes to stable storage. Print stations get powered
// off without warning, so a plain in-kernel flush is not enough here.
func (s *FileSink) Flush() error {
	return s.file.Sync()
}

func (s *FileSink) Close() error {
	return s.file.Close()
}
