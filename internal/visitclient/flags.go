package visitclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Zachkp/portfolio/internal/atomicfile"
)

// FlagStore is local, persistent key/value storage scoped to one client
// profile. Flags never expire.
type FlagStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// FileFlags keeps flags in a small JSON object on disk.
type FileFlags struct {
	mu   sync.Mutex
	path string
}

// NewFileFlags returns a FlagStore backed by path.
func NewFileFlags(path string) *FileFlags {
	return &FileFlags{path: path}
}

// DefaultFlagsPath is flags.json under the user's config directory.
func DefaultFlagsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "portfolio", "flags.json"), nil
}

// Get returns the value of key and whether it was set.
func (f *FileFlags) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	flags, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := flags[key]
	return v, ok, nil
}

// Set stores value under key.
func (f *FileFlags) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	flags, err := f.read()
	if err != nil {
		return err
	}
	flags[key] = value

	data, err := json.MarshalIndent(flags, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal flags: %w", err)
	}
	if err := atomicfile.Write(f.path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write flags: %w", err)
	}
	return nil
}

func (f *FileFlags) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read flags: %w", err)
	}
	flags := map[string]string{}
	if err := json.Unmarshal(data, &flags); err != nil {
		return nil, fmt.Errorf("decode flags: %w", err)
	}
	return flags, nil
}

// MemoryFlags is a FlagStore that lives only as long as the process.
type MemoryFlags struct {
	mu    sync.Mutex
	flags map[string]string
}

// NewMemoryFlags returns an empty MemoryFlags.
func NewMemoryFlags() *MemoryFlags {
	return &MemoryFlags{flags: map[string]string{}}
}

// Get returns the value of key and whether it was set.
func (m *MemoryFlags) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.flags[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *MemoryFlags) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[key] = value
	return nil
}
