package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Persister saves and loads the serialized state blob under a fixed namespace
type Persister interface {
	// Load returns the stored blob, or nil when nothing has been saved yet
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the stored blob
	Save(ctx context.Context, blob []byte) error

	// Ping checks that the backend is reachable
	Ping(ctx context.Context) error

	Close() error
}

// MemoryPersister keeps the blob in process memory
type MemoryPersister struct {
	mu    sync.RWMutex
	blob  []byte
	saves int
}

// NewMemoryPersister creates an empty in-memory persister
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

// NewMemoryPersisterWith creates an in-memory persister preloaded with a blob
func NewMemoryPersisterWith(blob []byte) *MemoryPersister {
	return &MemoryPersister{blob: append([]byte(nil), blob...)}
}

func (p *MemoryPersister) Load(ctx context.Context) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.blob == nil {
		return nil, nil
	}
	return append([]byte(nil), p.blob...), nil
}

func (p *MemoryPersister) Save(ctx context.Context, blob []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.blob = append([]byte(nil), blob...)
	p.saves++
	return nil
}

func (p *MemoryPersister) Ping(ctx context.Context) error { return nil }

func (p *MemoryPersister) Close() error { return nil }

// Saves returns how many times the blob has been written
func (p *MemoryPersister) Saves() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.saves
}

// FilePersister stores the blob in a single JSON file
type FilePersister struct {
	path string
	mu   sync.Mutex
}

// NewFilePersister creates a persister writing to path, creating its directory if needed
func NewFilePersister(path string) (*FilePersister, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &FilePersister{path: path}, nil
}

func (p *FilePersister) Load(ctx context.Context) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	return data, nil
}

// Save writes to a temp file in the same directory and renames it over the target
func (p *FilePersister) Save(ctx context.Context, blob []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(p.path), ".state-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, p.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

func (p *FilePersister) Ping(ctx context.Context) error {
	_, err := os.Stat(filepath.Dir(p.path))
	return err
}

func (p *FilePersister) Close() error { return nil }
