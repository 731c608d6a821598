package repositories

import (
	"context"

	"library-desk/internal/core/domain"
)

// BookRepository defines book repository interface.
// GetByID returns domain.ErrNotFound when no book has the id.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	GetAll(ctx context.Context) ([]*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) error
	ExistsByID(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}

// MemberRepository defines member repository interface.
// GetByID returns domain.ErrNotFound when no member has the id.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	GetAll(ctx context.Context) ([]*domain.Member, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Member, int64, error)
	Update(ctx context.Context, member *domain.Member) error
	ExistsByID(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}
