package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// State is the resumable progress of one scraper run.
type State struct {
	TotalPushed int `json:"total_pushed"`
}

// Store persists State between restarts of the same run.
type Store interface {
	Load() (State, error)
	Save(s State) error
}

// FileStore keeps State as a small JSON document.
type FileStore struct {
	mu   sync.Mutex
	path string
}

var _ Store = &FileStore{}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the zero State when the file does not exist yet.
func (f *FileStore) Load() (State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("read state %s: %w", f.path, err)
	}

	var s State
	if err := json.Unmarshal(b, &s); err != nil {
		return State{}, fmt.Errorf("decode state %s: %w", f.path, err)
	}
	return s, nil
}

// Save writes to a temp file and renames it over the old state.
func (f *FileStore) Save(s State) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := json.MarshalIndent(s, "", " ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write state %s: %w", tmp, err)
	}
	return os.Rename(tmp, f.path)
}

type MemoryStore struct {
	mu    sync.Mutex
	state State
	saves int
}

var _ Store = &MemoryStore{}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state, nil
}

func (m *MemoryStore) Save(s State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = s
	m.saves++
	return nil
}

// Saves is the number of Save calls.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.saves
}
