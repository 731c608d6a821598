package config

import (
	"context"
	"log"

	"library-desk/internal/core/services"
)

// demoBooks and demoMembers are the demo catalogue
var demoBooks = []struct{ ID, Title, Author string }{
	{"b1", "Clean Code", "Robert Martin"},
	{"b2", "Design Patterns", "GoF"},
	{"b3", "JavaScript: The Good Parts", "Douglas Crockford"},
}

var demoMembers = []struct{ ID, Name, Email string }{
	{"m1", "Ada", "ada@example.com"},
	{"m2", "Linus", "linus@example.com"},
	{"m3", "Alan", "alan@example.com"},
}

// SeedResult reports what a seeding run created
type SeedResult struct {
	BooksAdded   int `json:"books_added"`
	MembersAdded int `json:"members_added"`
}

// Seeder fills an empty library with demo data
type Seeder struct {
	library *services.LibraryService
}

// NewSeeder creates a new seeder instance
func NewSeeder(library *services.LibraryService) *Seeder {
	return &Seeder{library: library}
}

// Run seeds books when there are none and members when there are none.
// It goes through the service so validation and welcome messages apply.
func (s *Seeder) Run(ctx context.Context) (*SeedResult, error) {
	log.Println("🌱 Seeding demo data...")

	result := &SeedResult{}

	books, err := s.library.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		for _, b := range demoBooks {
			if _, err := s.library.AddBook(ctx, b.ID, b.Title, b.Author); err != nil {
				return result, err
			}
			result.BooksAdded++
		}
	}

	members, err := s.library.ListMembers(ctx, &services.ListMembersInput{Limit: 1})
	if err != nil {
		return result, err
	}
	if members.Total == 0 {
		for _, m := range demoMembers {
			if _, err := s.library.RegisterMember(ctx, m.ID, m.Name, m.Email); err != nil {
				return result, err
			}
			result.MembersAdded++
		}
	}

	log.Printf("✅ Demo data seeded [books: %d, members: %d]", result.BooksAdded, result.MembersAdded)
	return result, nil
}
