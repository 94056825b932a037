package localstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps one JSON file per collection under a base directory.
// It mirrors the browser's persistent store on disk so the dashboard
// pipeline can run against durable local data.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(c Collection) string {
	return filepath.Join(f.dir, string(c)+".json")
}

func (f *FileStore) Get(_ context.Context, c Collection) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, err := os.ReadFile(f.path(c))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", c, err)
	}
	return raw, nil
}

func (f *FileStore) Put(_ context.Context, c Collection, raw []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tmp := f.path(c) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("write collection %s: %w", c, err)
	}
	if err := os.Rename(tmp, f.path(c)); err != nil {
		return fmt.Errorf("replace collection %s: %w", c, err)
	}
	return nil
}
