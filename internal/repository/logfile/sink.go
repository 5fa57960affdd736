package logfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
)

// Separator closes every entry appended to the log.
const Separator = "========================================"

// DefaultPath is the log location, relative to the working directory.
const DefaultPath = "reports.txt"

// PersistenceError reports that the log could not be opened or written.
type PersistenceError struct {
	Path string
	Op   string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("report log %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Sink appends rendered reports to a plain-text log file. The file is opened
// for each append and closed before Append returns. Appends are serialized so
// concurrent callers never interleave entries.
type Sink struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

// NewSink builds a sink writing to path.
func NewSink(path string, logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path == "" {
		path = DefaultPath
	}
	return &Sink{path: path, logger: logger}
}

// Path returns the log file location.
func (s *Sink) Path() string {
	return s.path
}

// Append writes text followed by the separator line and a blank line.
func (s *Sink) Append(text string) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &PersistenceError{Path: s.path, Op: "open", Err: err}
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = &PersistenceError{Path: s.path, Op: "close", Err: closeErr}
		}
	}()

	if _, writeErr := io.WriteString(file, Entry(text)); writeErr != nil {
		return &PersistenceError{Path: s.path, Op: "write", Err: writeErr}
	}

	s.logger.Debug("report appended to log", zap.String("path", s.path), zap.Int("bytes", len(text)))
	return nil
}

// Read returns the whole log. A log that does not exist yet reads as empty.
func (s *Sink) Read() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", &PersistenceError{Path: s.path, Op: "read", Err: err}
	}
	return string(data), nil
}

// Entry is the exact text one Append adds to the log.
func Entry(text string) string {
	return text + "\n" + Separator + "\n\n"
}
