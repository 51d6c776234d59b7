package uploads

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// Scope owns every temporary file it creates and removes them all on Close.
type Scope struct {
	dir      string
	maxBytes int64

	mu     sync.Mutex
	paths  []string
	closed bool
}

func NewScope(dir string, maxBytes int64) *Scope {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Scope{dir: dir, maxBytes: maxBytes}
}

// Save copies r into a uniquely named file that keeps the original extension.
func (s *Scope) Save(name string, r io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", errors.New("temp file scope already closed")
	}

	path := filepath.Join(s.dir, "mentora-"+uuid.New().String()+extension(name))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	s.paths = append(s.paths, path)

	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}
	n, copyErr := io.Copy(f, src)
	closeErr := f.Close()

	if copyErr != nil {
		return "", fmt.Errorf("failed to write temp file: %w", copyErr)
	}
	if closeErr != nil {
		return "", fmt.Errorf("failed to close temp file: %w", closeErr)
	}
	if s.maxBytes > 0 && n > s.maxBytes {
		return "", &ValidationError{
			Code:    CodeFileTooLarge,
			Message: fmt.Sprintf("File size exceeds %dMB limit", s.maxBytes/(1024*1024)),
		}
	}

	return path, nil
}

func (s *Scope) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.paths...)
}

// Close deletes every file created in the scope. It is safe to call twice.
func (s *Scope) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	var errs []error
	for _, p := range s.paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			log.Printf("failed to remove temp file %s: %v", p, err)
			errs = append(errs, err)
		}
	}
	s.paths = nil
	return errors.Join(errs...)
}

// WithScope runs fn with a fresh scope and removes its files when fn returns,
// fails, or panics.
func WithScope(dir string, maxBytes int64, fn func(*Scope) error) (err error) {
	s := NewScope(dir, maxBytes)
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("temp file cleanup: %w", cerr)
		}
	}()
	return fn(s)
}
