package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"library-desk/internal/adapters/persistence/repositories"
	"library-desk/internal/core/domain"
	"library-desk/internal/pkg/logger"

	"go.uber.org/zap"
)

// LibraryService handles catalogue, membership and checkout business logic
type LibraryService struct {
	bookRepo   repositories.BookRepository
	memberRepo repositories.MemberRepository
	payment    PaymentPort
	notifier   NotifierPort
	feePolicy  FeePolicy
	log        *zap.Logger

	// mu serializes every operation that writes to the repositories
	mu sync.Mutex
}

// NewLibraryService creates a new library service
func NewLibraryService(
	bookRepo repositories.BookRepository,
	memberRepo repositories.MemberRepository,
	payment PaymentPort,
	notifier NotifierPort,
	feePolicy FeePolicy,
	log *zap.Logger,
) *LibraryService {
	if feePolicy == nil {
		feePolicy = NewLateFeePolicy()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &LibraryService{
		bookRepo:   bookRepo,
		memberRepo: memberRepo,
		payment:    payment,
		notifier:   notifier,
		feePolicy:  feePolicy,
		log:        log.Named(logger.ActivityLoggerName),
	}
}

// LibraryStats summarises the library state
type LibraryStats struct {
	Books           int     `json:"books"`
	AvailableBooks  int     `json:"available_books"`
	Members         int     `json:"members"`
	MembersWithFees int     `json:"members_with_fees"`
	TotalFees       float64 `json:"total_fees"`
}

// AddBook adds a new, available book to the catalogue
func (s *LibraryService) AddBook(ctx context.Context, id, title, author string) (*domain.Book, error) {
	id = strings.TrimSpace(id)
	title = strings.TrimSpace(title)
	if id == "" || title == "" {
		return nil, domain.ErrMissingFields
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.bookRepo.ExistsByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check book: %w", err)
	}
	if exists {
		return nil, domain.ErrBookAlreadyExists
	}

	book := &domain.Book{
		ID:        id,
		Title:     title,
		Author:    strings.TrimSpace(author),
		Available: true,
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to save book: %w", err)
	}

	s.log.Info("Book added", zap.String("book_id", book.ID), zap.String("title", book.Title))
	return book, nil
}

// RegisterMember registers a member and sends a welcome message.
// A failed welcome message does not undo the registration.
func (s *LibraryService) RegisterMember(ctx context.Context, id, name, email string) (*domain.Member, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id = strings.TrimSpace(id)
	exists, err := s.memberRepo.ExistsByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check member: %w", err)
	}
	if exists {
		return nil, domain.ErrMemberAlreadyExists
	}

	member := &domain.Member{
		ID:    id,
		Name:  strings.TrimSpace(name),
		Email: email,
		Fees:  0,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to save member: %w", err)
	}

	s.log.Info("Member registered", zap.String("member_id", member.ID), zap.String("name", member.Name))

	s.notify(ctx, member.Email, "Welcome",
		fmt.Sprintf("Hi %s, your id is %s", member.Name, member.ID))

	return member, nil
}

// CheckoutBook lends a book to a member, charging the late fee up front.
// Nothing is written unless the book is available and the payment went through.
func (s *LibraryService) CheckoutBook(ctx context.Context, input CheckoutInput) (*domain.CheckoutResult, error) {
	days := DefaultCheckoutDays
	if input.Days != nil {
		days = *input.Days
	}
	card := strings.TrimSpace(input.Card)
	if card == "" {
		card = DefaultCard
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	book, err := s.bookRepo.GetByID(ctx, input.BookID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	member, err := s.memberRepo.GetByID(ctx, input.MemberID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	if !book.Available {
		return nil, domain.ErrBookUnavailable
	}

	fee := s.feePolicy.Calculate(days)

	var txnID string
	if fee > 0 {
		result, err := s.payment.Charge(ctx, fee, card)
		if err != nil {
			s.log.Warn("Payment error", zap.String("member_id", member.ID), zap.Float64("fee", fee), zap.Error(err))
			return nil, fmt.Errorf("%w: %v", domain.ErrPaymentFailed, err)
		}
		if result == nil || !result.OK {
			s.log.Warn("Payment declined", zap.String("member_id", member.ID), zap.Float64("fee", fee))
			return nil, domain.ErrPaymentFailed
		}
		txnID = result.TransactionID
		member.Fees += fee
	}

	book.Available = false

	// The charge has already happened; a failed write here loses the fee record.
	if fee > 0 {
		if err := s.memberRepo.Update(ctx, member); err != nil {
			s.log.Error("Fee charged but member not saved",
				zap.String("member_id", member.ID), zap.String("txn", txnID), zap.Error(err))
			return nil, fmt.Errorf("failed to save member: %w", err)
		}
	}
	if err := s.bookRepo.Update(ctx, book); err != nil {
		s.log.Error("Checkout not saved",
			zap.String("book_id", book.ID), zap.String("txn", txnID), zap.Error(err))
		return nil, fmt.Errorf("failed to save book: %w", err)
	}

	s.log.Info("Book checked out",
		zap.String("book_id", book.ID),
		zap.String("member_id", member.ID),
		zap.Int("days", days),
		zap.Float64("fee", fee),
	)

	s.notify(ctx, member.Email, "Checkout",
		fmt.Sprintf("You borrowed %s. Fee: $%.2f", book.Title, fee))

	return &domain.CheckoutResult{
		Book:          book,
		Member:        member,
		Fee:           fee,
		TransactionID: txnID,
	}, nil
}

// Search returns books whose title or author contains term, ignoring case.
// A blank term returns the whole catalogue.
func (s *LibraryService) Search(ctx context.Context, term string) ([]*domain.Book, error) {
	books, err := s.bookRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" {
		return books, nil
	}

	results := make([]*domain.Book, 0, len(books))
	for _, b := range books {
		if b.MatchesTerm(t) {
			results = append(results, b)
		}
	}

	s.log.Debug("Search", zap.String("term", term), zap.Int("results", len(results)))
	return results, nil
}

// ListBooks returns the whole catalogue
func (s *LibraryService) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.Search(ctx, "")
}

// GetBook gets a book by ID
func (s *LibraryService) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// GetMember gets a member by ID
func (s *LibraryService) GetMember(ctx context.Context, id string) (*domain.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// ListMembers lists members with pagination
func (s *LibraryService) ListMembers(ctx context.Context, input *ListMembersInput) (*ListMembersOutput, error) {
	offset, limit := input.Offset, input.Limit
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 20
	}

	members, total, err := s.memberRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	return &ListMembersOutput{
		Members: members,
		Total:   total,
	}, nil
}

// MembersWithFees returns every member that owes money
func (s *LibraryService) MembersWithFees(ctx context.Context) ([]*domain.Member, error) {
	members, err := s.memberRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	owing := make([]*domain.Member, 0)
	for _, m := range members {
		if m.HasOutstandingFees() {
			owing = append(owing, m)
		}
	}
	return owing, nil
}

// Stats counts books, members and outstanding fees
func (s *LibraryService) Stats(ctx context.Context) (*LibraryStats, error) {
	books, err := s.bookRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	members, err := s.memberRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &LibraryStats{
		Books:   len(books),
		Members: len(members),
	}
	for _, b := range books {
		if b.Available {
			stats.AvailableBooks++
		}
	}
	for _, m := range members {
		if m.HasOutstandingFees() {
			stats.MembersWithFees++
			stats.TotalFees += m.Fees
		}
	}
	return stats, nil
}

// Reset removes every book and member
func (s *LibraryService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.bookRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear books: %w", err)
	}
	if err := s.memberRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear members: %w", err)
	}

	s.log.Info("Library reset")
	return nil
}

// NotifyMember sends a message to a member through the notifier
func (s *LibraryService) NotifyMember(ctx context.Context, member *domain.Member, subject, body string) bool {
	return s.notify(ctx, member.Email, subject, body)
}

func (s *LibraryService) notify(ctx context.Context, to, subject, body string) bool {
	if s.notifier == nil {
		return false
	}
	if err := s.notifier.Send(ctx, to, subject, body); err != nil {
		s.log.Warn("Notification failed", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return false
	}
	return true
}
