package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// FileName returns the name a history of n messages is saved under.
func FileName(n int) string {
	return "history-" + strconv.Itoa(n) + ".txt"
}

// Store reads and writes history files in a directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. An empty dir means the working
// directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory files are written to.
func (s *Store) Dir() string {
	return s.dir
}

// Download writes f as FileName(historyLength) and returns its path.
func (s *Store) Download(historyLength int, f *File) (string, error) {
	if s.dir != "" {
		if err := os.MkdirAll(s.dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	data, err := Encode(f)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, FileName(historyLength))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write history file: %w", err)
	}
	return path, nil
}

// Upload reads the file at path in the background and passes its text to
// callback. An empty path is a cancelled pick: callback is never called.
func (s *Store) Upload(path string, callback func(text []byte, err error)) {
	if path == "" {
		return
	}
	if !filepath.IsAbs(path) && s.dir != "" {
		path = filepath.Join(s.dir, path)
	}
	go func() {
		data, err := os.ReadFile(path)
		if err != nil {
			callback(nil, fmt.Errorf("failed to read history file: %w", err))
			return
		}
		callback(data, nil)
	}()
}

// Load reads and decodes the file at path.
func Load(path, program string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}
	return Decode(data, program)
}
