package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// ErrOutput marks failures to create or write a generated file
var ErrOutput = errors.New("output error")

// Sink receives finalized units
type Sink interface {
	Create(name string, data []byte) error
}

// DirSink writes units into a directory. Without Overwrite an existing
// destination file is an error. A file whose write fails is removed.
type DirSink struct {
	Dir       string
	Overwrite bool
}

// NewDirSink creates a sink rooted at dir
func NewDirSink(dir string, overwrite bool) *DirSink {
	return &DirSink{Dir: dir, Overwrite: overwrite}
}

// Create writes data to Dir/name
func (s *DirSink) Create(name string, data []byte) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create output directory %s: %v", ErrOutput, s.Dir, err)
	}

	path := filepath.Join(s.Dir, name)
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if s.Overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s already exists", ErrOutput, path)
		}
		return fmt.Errorf("%w: failed to create %s: %v", ErrOutput, path, err)
	}

	if err := writeData(f, data); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("%w: failed to write %s: %v", ErrOutput, path, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("%w: failed to close %s: %v", ErrOutput, path, err)
	}

	return nil
}

// writeData is replaced in tests to simulate a failing disk
var writeData = func(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}

// MemorySink keeps units in memory
type MemorySink struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemorySink creates an empty in-memory sink
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// Create records a unit; creating the same name twice is an error
func (s *MemorySink) Create(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[name]; ok {
		return fmt.Errorf("%w: %s already exists", ErrOutput, name)
	}
	s.files[name] = append([]byte(nil), data...)
	return nil
}

// File returns the content of a recorded unit
func (s *MemorySink) File(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.files[name]
	return data, ok
}

// Names returns the recorded unit names, sorted
func (s *MemorySink) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
