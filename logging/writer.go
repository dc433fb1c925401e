package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// reopenWriter is an io.WriteCloser that opens its file lazily and reopens
// it when the file disappears underneath a long-running process (e.g. the
// state directory is cleaned while watch is running).
type reopenWriter struct {
	mu     sync.Mutex
	path   string
	writer io.WriteCloser
}

func newReopenWriter(path string) *reopenWriter {
	return &reopenWriter{path: path}
}

// Write implements the io.Writer interface.
func (w *reopenWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	writer, err := w.getWriter()
	if err != nil {
		return 0, err
	}

	return writer.Write(p)
}

// Close implements the io.Closer interface.
func (w *reopenWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.writer != nil {
		err := w.writer.Close()
		w.writer = nil
		return err
	}
	return nil
}

// getWriter returns an open file handle, reopening when the file is gone.
func (w *reopenWriter) getWriter() (io.WriteCloser, error) {
	if w.writer != nil {
		// Reopen if the file was removed since the last write.
		if _, err := os.Stat(w.path); os.IsNotExist(err) {
			w.writer.Close()
			w.writer = nil
		}
	}

	if w.writer == nil {
		if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		file, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		w.writer = file
	}

	return w.writer, nil
}
