package download

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileWriter writes an artifact at a path relative to the download
// destination. Implementations must create parent directories before each
// write and overwrite existing files, so re-running a download replaces the
// previous artifact set without manual cleanup.
type FileWriter interface {
	Write(relPath string, content []byte) error
}

// OSWriter writes artifacts under a root directory on disk.
type OSWriter struct {
	Root string
}

func (w *OSWriter) Write(relPath string, content []byte) error {
	fullPath := filepath.Join(w.Root, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", relPath, err)
	}
	if err := os.WriteFile(fullPath, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", relPath, err)
	}
	return nil
}

// MemWriter collects writes in memory for tests.
type MemWriter struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemWriter creates an empty in-memory writer.
func NewMemWriter() *MemWriter {
	return &MemWriter{files: map[string][]byte{}}
}

func (w *MemWriter) Write(relPath string, content []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[relPath] = content
	return nil
}

// File returns the content written at relPath and whether it exists.
func (w *MemWriter) File(relPath string) ([]byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	content, ok := w.files[relPath]
	return content, ok
}

// Len returns the number of files written.
func (w *MemWriter) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.files)
}
