package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Storage is a key/blob store, the server-side stand-in for browser local storage
type Storage interface {
	// Get returns the blob stored under key, or nil if nothing is stored
	Get(key string) ([]byte, error)
	Set(key string, data []byte) error
	Remove(key string) error
	Ping() error
}

// fileStorage keeps one file per key under dir
type fileStorage struct {
	dir string
	mu  sync.Mutex
}

// NewFileStorage creates a file backed storage rooted at dir
func NewFileStorage(dir string) (Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &fileStorage{dir: dir}, nil
}

func (s *fileStorage) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get reads the blob for key
func (s *fileStorage) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

// Set replaces the blob for key. The write goes to a temp file which is then renamed,
// so readers never observe a half written blob.
func (s *fileStorage) Set(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, s.path(key))
}

// Remove deletes the blob for key; removing a missing key is not an error
func (s *fileStorage) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Ping checks that the data dir is still reachable
func (s *fileStorage) Ping() error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dir)
	}
	return nil
}

// memoryStorage is used in tests and for throwaway dev runs
type memoryStorage struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStorage creates an in-process storage
func NewMemoryStorage() Storage {
	return &memoryStorage{blobs: make(map[string][]byte)}
}

func (s *memoryStorage) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *memoryStorage) Set(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	s.blobs[key] = buf
	return nil
}

func (s *memoryStorage) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.blobs, key)
	return nil
}

func (s *memoryStorage) Ping() error {
	return nil
}
