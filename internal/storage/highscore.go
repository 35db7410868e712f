package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

var (
	// ErrNoHighScore is returned when the high-score file does not exist.
	ErrNoHighScore = errors.New("storage: high score file not found")
	// ErrCorruptHighScore is returned when the file does not hold a
	// non-negative decimal integer.
	ErrCorruptHighScore = errors.New("storage: high score file is corrupt")
)

// FileStore keeps the high score as a decimal integer in a text file.
// The file is read whole and rewritten whole; the last write wins.
// A FileStore is safe for concurrent use by several game sessions.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store for the file at path ("~" is expanded).
// The file is not touched until Load or Save.
func NewFileStore(path string) (*FileStore, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	if expanded == "" {
		return nil, errors.New("storage: empty high score path")
	}
	return &FileStore{path: expanded}, nil
}

// Path returns the expanded file path.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the high score. A missing file wraps ErrNoHighScore and
// anything that is not a non-negative integer wraps ErrCorruptHighScore.
func (f *FileStore) Load() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, fmt.Errorf("%w: %s", ErrNoHighScore, f.path)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read %s: %w", f.path, err)
	}

	return parseHighScore(f.path, data)
}

func parseHighScore(path string, data []byte) (int, error) {
	text := strings.TrimSpace(string(data))
	score, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q is not an integer", ErrCorruptHighScore, path, text)
	}
	if score < 0 {
		return 0, fmt.Errorf("%w: %s: negative score %d", ErrCorruptHighScore, path, score)
	}
	return score, nil
}

// Save overwrites the file with score, creating parent directories as needed.
func (f *FileStore) Save(score int) error {
	if score < 0 {
		return fmt.Errorf("storage: refusing to save negative high score %d", score)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(score)
}

// SaveIfHigher writes score only when it beats the value currently in the
// file, and returns the high score the file holds afterwards. The read and
// the write happen under one lock, so sessions sharing the store never
// replace a record with a lower score. A missing or corrupt file counts as
// no record.
func (f *FileStore) SaveIfHigher(score int) (int, error) {
	if score < 0 {
		return 0, fmt.Errorf("storage: refusing to save negative high score %d", score)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	current := -1
	data, err := os.ReadFile(f.path)
	switch {
	case err == nil:
		if stored, parseErr := parseHighScore(f.path, data); parseErr == nil {
			current = stored
		}
	case !errors.Is(err, fs.ErrNotExist):
		return 0, fmt.Errorf("storage: cannot read %s: %w", f.path, err)
	}

	if score <= current {
		return current, nil
	}
	if err := f.write(score); err != nil {
		return 0, err
	}
	return score, nil
}

func (f *FileStore) write(score int) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory for %s: %w", f.path, err)
	}
	if err := os.WriteFile(f.path, []byte(strconv.Itoa(score)), 0o644); err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", f.path, err)
	}
	return nil
}

// ExpandPath expands a leading "~" to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
