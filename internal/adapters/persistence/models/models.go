package models

import (
	"time"

	"library-desk/internal/core/domain"

	"gorm.io/gorm"
)

// Book represents books table
type Book struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Title     string    `gorm:"size:255;not null;index" json:"title"`
	Author    string    `gorm:"size:255;index" json:"author"`
	Available bool      `gorm:"not null" json:"available"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// ToDomain converts the row to a domain book
func (b *Book) ToDomain() *domain.Book {
	return &domain.Book{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Available: b.Available,
	}
}

// BookFromDomain builds a row from a domain book
func BookFromDomain(b *domain.Book) *Book {
	return &Book{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Available: b.Available,
	}
}

// Member represents members table
type Member struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"size:255" json:"name"`
	Email     string    `gorm:"size:255;not null;index" json:"email"`
	Fees      float64   `gorm:"type:decimal(10,2);not null" json:"fees"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

// ToDomain converts the row to a domain member
func (m *Member) ToDomain() *domain.Member {
	return &domain.Member{
		ID:    m.ID,
		Name:  m.Name,
		Email: m.Email,
		Fees:  m.Fees,
	}
}

// MemberFromDomain builds a row from a domain member
func MemberFromDomain(m *domain.Member) *Member {
	return &Member{
		ID:    m.ID,
		Name:  m.Name,
		Email: m.Email,
		Fees:  m.Fees,
	}
}

// AutoMigrate runs auto migration for the library tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Book{},
		&Member{},
	)
}
