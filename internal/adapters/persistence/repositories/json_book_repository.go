package repositories

import (
	"context"

	"library-desk/internal/adapters/persistence/storage"
	"library-desk/internal/core/domain"
)

// jsonBookRepository implements BookRepository on top of the library blob
type jsonBookRepository struct {
	store *storage.LibraryStore
}

// NewJSONBookRepository creates a book repository backed by the library blob
func NewJSONBookRepository(store *storage.LibraryStore) BookRepository {
	return &jsonBookRepository{store: store}
}

// Create appends a book and persists the whole collection
func (r *jsonBookRepository) Create(ctx context.Context, book *domain.Book) error {
	return r.store.Update(func(s *storage.Snapshot) error {
		b := *book
		s.Books = append(s.Books, &b)
		return nil
	})
}

// GetByID returns the first book with the id
func (r *jsonBookRepository) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	snap, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for _, b := range snap.Books {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, domain.ErrNotFound
}

// GetAll returns every book in insertion order
func (r *jsonBookRepository) GetAll(ctx context.Context) ([]*domain.Book, error) {
	snap, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	if snap.Books == nil {
		return []*domain.Book{}, nil
	}
	return snap.Books, nil
}

// Update replaces the book with a matching id
func (r *jsonBookRepository) Update(ctx context.Context, book *domain.Book) error {
	return r.store.Update(func(s *storage.Snapshot) error {
		for i, b := range s.Books {
			if b.ID == book.ID {
				updated := *book
				s.Books[i] = &updated
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

// ExistsByID checks if a book id is taken
func (r *jsonBookRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	_, err := r.GetByID(ctx, id)
	if err == domain.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

// Count returns the number of books
func (r *jsonBookRepository) Count(ctx context.Context) (int64, error) {
	snap, err := r.store.Load()
	if err != nil {
		return 0, err
	}
	return int64(len(snap.Books)), nil
}

// DeleteAll drops every book
func (r *jsonBookRepository) DeleteAll(ctx context.Context) error {
	return r.store.Update(func(s *storage.Snapshot) error {
		s.Books = nil
		return nil
	})
}
