package repositories

import (
	"context"
	"errors"

	"library-desk/internal/adapters/persistence/models"
	"library-desk/internal/core/domain"

	"gorm.io/gorm"
)

// bookRepository implements BookRepository interface on MySQL
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// Create creates a new book
func (r *bookRepository) Create(ctx context.Context, book *domain.Book) error {
	return r.db.WithContext(ctx).Create(models.BookFromDomain(book)).Error
}

// GetByID gets a book by ID
func (r *bookRepository) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return book.ToDomain(), nil
}

// GetAll lists every book in insertion order
func (r *bookRepository) GetAll(ctx context.Context) ([]*domain.Book, error) {
	var rows []*models.Book
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	books := make([]*domain.Book, len(rows))
	for i, row := range rows {
		books[i] = row.ToDomain()
	}
	return books, nil
}

// Update updates a book
func (r *bookRepository) Update(ctx context.Context, book *domain.Book) error {
	result := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("id = ?", book.ID).
		Updates(map[string]interface{}{
			"title":     book.Title,
			"author":    book.Author,
			"available": book.Available,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsByID checks if book ID exists
func (r *bookRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Book{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Count counts all books
func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&count).Error
	return count, err
}

// DeleteAll removes every book
func (r *bookRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Book{}).Error
}
