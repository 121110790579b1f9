// Package download delivers exported crops. It stands in for a browser's
// "trigger download": the cropper hands over a filename and the encoded
// bytes and does not care where they end up.
package download

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultFilename is the name every export is delivered under.
const DefaultFilename = "cropped-image.png"

// Downloader receives an encoded file.
type Downloader interface {
	// Download stores data under name and returns where it went.
	Download(name string, data []byte) (string, error)
}

// DirSink writes downloads into a directory, replacing any previous file of
// the same name.
type DirSink struct {
	Dir string
}

// Download writes data to Dir/name through a temporary file so a reader never
// sees a partial image.
func (s DirSink) Download(name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(s.Dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}

	dest := filepath.Join(s.Dir, filepath.Base(name))
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", name, err)
	}
	return dest, nil
}

// MemorySink keeps downloads in memory. The zero value is ready to use and
// safe for concurrent use.
type MemorySink struct {
	mu    sync.Mutex
	files map[string][]byte
	count int
}

// Download records data under name.
func (s *MemorySink) Download(name string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.files == nil {
		s.files = make(map[string][]byte)
	}
	s.files[name] = append([]byte(nil), data...)
	s.count++
	return "memory:" + name, nil
}

// File returns the last data stored under name.
func (s *MemorySink) File(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[name]
	return data, ok
}

// Count returns how many downloads were received.
func (s *MemorySink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
