package storage

import (
	"fmt"
	"sync"

	"library-desk/internal/core/domain"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

// DefaultKey is the storage key the library blob lives under
const DefaultKey = "LIB_DATA"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Snapshot is the persisted shape of the whole library
type Snapshot struct {
	Books   []*domain.Book   `json:"books"`
	Members []*domain.Member `json:"members"`
}

func (s *Snapshot) isEmpty() bool {
	return len(s.Books) == 0 && len(s.Members) == 0
}

// LibraryStore reads and writes the library snapshot as a single JSON blob.
// Every read goes to storage so all repositories sharing a store see the same state.
type LibraryStore struct {
	storage Storage
	key     string
	logger  *zap.Logger
	mu      sync.Mutex
}

// NewLibraryStore creates a new library store
func NewLibraryStore(storage Storage, key string, logger *zap.Logger) *LibraryStore {
	if key == "" {
		key = DefaultKey
	}
	return &LibraryStore{
		storage: storage,
		key:     key,
		logger:  logger,
	}
}

// Key returns the storage key of the blob
func (s *LibraryStore) Key() string {
	return s.key
}

// Load returns the current snapshot. A blob that cannot be decoded is treated as empty.
func (s *LibraryStore) Load() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Update applies fn to the current snapshot and persists the result when fn succeeds.
// A snapshot left with no books and no members removes the blob entirely.
func (s *LibraryStore) Update(fn func(*Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(snap); err != nil {
		return err
	}

	if snap.isEmpty() {
		return s.storage.Remove(s.key)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode library: %w", err)
	}
	if err := s.storage.Set(s.key, data); err != nil {
		return fmt.Errorf("failed to save library: %w", err)
	}
	return nil
}

// Clear removes the blob
func (s *LibraryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storage.Remove(s.key)
}

// Ping checks the underlying storage
func (s *LibraryStore) Ping() error {
	return s.storage.Ping()
}

func (s *LibraryStore) load() (*Snapshot, error) {
	data, err := s.storage.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read library: %w", err)
	}

	snap := &Snapshot{}
	if len(data) == 0 {
		return snap, nil
	}

	if err := json.Unmarshal(data, snap); err != nil {
		s.logger.Warn("⚠️ Library data is unreadable, starting empty",
			zap.String("key", s.key),
			zap.Error(err),
		)
		return &Snapshot{}, nil
	}
	return snap, nil
}
