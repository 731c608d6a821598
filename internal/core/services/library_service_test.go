package services

import (
	"context"
	"errors"
	"testing"

	"library-desk/internal/adapters/persistence/repositories"
	"library-desk/internal/adapters/persistence/storage"
	"library-desk/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	svc        *LibraryService
	store      *storage.LibraryStore
	bookRepo   repositories.BookRepository
	memberRepo repositories.MemberRepository
	payment    *mockPayment
	notifier   *mockNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := storage.NewLibraryStore(storage.NewMemoryStorage(), storage.DefaultKey, zap.NewNop())
	f := &fixture{
		store:      store,
		bookRepo:   repositories.NewJSONBookRepository(store),
		memberRepo: repositories.NewJSONMemberRepository(store),
		payment:    new(mockPayment),
		notifier:   new(mockNotifier),
	}
	f.svc = NewLibraryService(f.bookRepo, f.memberRepo, f.payment, f.notifier, NewLateFeePolicy(), zap.NewNop())
	return f
}

// givenMember registers a member directly, without a welcome message
func (f *fixture) givenMember(t *testing.T, id, email string) {
	t.Helper()
	require.NoError(t, f.memberRepo.Create(context.Background(), &domain.Member{ID: id, Name: "Ada", Email: email}))
}

func (f *fixture) givenBook(t *testing.T, id, title, author string, available bool) {
	t.Helper()
	require.NoError(t, f.bookRepo.Create(context.Background(), &domain.Book{ID: id, Title: title, Author: author, Available: available}))
}

func intPtr(n int) *int {
	return &n
}

func TestAddBook_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	book, err := f.svc.AddBook(ctx, "b1", "Clean Code", "Martin")
	require.NoError(t, err)
	assert.True(t, book.Available)

	// reload through a fresh repository on the same store
	reloaded, err := repositories.NewJSONBookRepository(f.store).GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "Clean Code", reloaded.Title)
	assert.True(t, reloaded.Available)
}

func TestAddBook_MissingFields(t *testing.T) {
	testCases := []struct {
		id    string
		title string
	}{
		{"", "Clean Code"},
		{"b1", ""},
		{"  ", "Clean Code"},
		{"b1", "   "},
	}

	for _, tt := range testCases {
		f := newFixture(t)
		_, err := f.svc.AddBook(context.Background(), tt.id, tt.title, "Martin")
		assert.ErrorIs(t, err, domain.ErrMissingFields)

		count, _ := f.bookRepo.Count(context.Background())
		assert.Zero(t, count)
	}
}

func TestAddBook_DuplicateID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddBook(ctx, "b1", "Clean Code", "Martin")
	require.NoError(t, err)

	_, err = f.svc.AddBook(ctx, "b1", "Other", "Someone")
	assert.ErrorIs(t, err, domain.ErrBookAlreadyExists)
}

func TestRegisterMember_SendsWelcome(t *testing.T) {
	f := newFixture(t)
	f.notifier.On("Send", mock.Anything, "ada@example.com", "Welcome", "Hi Ada, your id is m1").Return(nil).Once()

	member, err := f.svc.RegisterMember(context.Background(), "m1", "Ada", "ada@example.com")
	require.NoError(t, err)
	assert.Zero(t, member.Fees)

	f.notifier.AssertExpectations(t)
}

func TestRegisterMember_InvalidEmailNeverNotifies(t *testing.T) {
	for _, email := range []string{"", "   ", "ada.example.com", "nobody"} {
		f := newFixture(t)

		_, err := f.svc.RegisterMember(context.Background(), "m1", "Ada", email)
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)

		f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		count, _ := f.memberRepo.Count(context.Background())
		assert.Zero(t, count)
	}
}

func TestRegisterMember_NotifierFailureKeepsMember(t *testing.T) {
	f := newFixture(t)
	f.notifier.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	_, err := f.svc.RegisterMember(context.Background(), "m1", "Ada", "ada@example.com")
	require.NoError(t, err)

	exists, err := f.memberRepo.ExistsByID(context.Background(), "m1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRegisterMember_DuplicateID(t *testing.T) {
	f := newFixture(t)
	f.givenMember(t, "m1", "ada@example.com")

	_, err := f.svc.RegisterMember(context.Background(), "m1", "Other", "other@example.com")
	assert.ErrorIs(t, err, domain.ErrMemberAlreadyExists)
	f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutBook_ChargesLateFee(t *testing.T) {
	// arrange
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.AddBook(ctx, "b1", "Clean Code", "Martin")
	require.NoError(t, err)
	f.givenMember(t, "m1", "ada@example.com")

	f.payment.On("Charge", mock.Anything, 3.5, DefaultCard).
		Return(&domain.ChargeResult{OK: true, TransactionID: "TXN-1"}, nil).Once()
	f.notifier.On("Send", mock.Anything, "ada@example.com", "Checkout", "You borrowed Clean Code. Fee: $3.50").
		Return(nil).Once()

	// act
	result, err := f.svc.CheckoutBook(ctx, CheckoutInput{BookID: "b1", MemberID: "m1", Days: intPtr(21)})

	// assert
	require.NoError(t, err)
	assert.Equal(t, 3.5, result.Fee)
	assert.Equal(t, 3.5, result.Member.Fees)
	assert.False(t, result.Book.Available)
	assert.Equal(t, "TXN-1", result.TransactionID)

	book, _ := f.bookRepo.GetByID(ctx, "b1")
	member, _ := f.memberRepo.GetByID(ctx, "m1")
	assert.False(t, book.Available)
	assert.Equal(t, 3.5, member.Fees)

	f.payment.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}

func TestCheckoutBook_DefaultsToTwentyOneDays(t *testing.T) {
	f := newFixture(t)
	f.givenBook(t, "b1", "Clean Code", "Martin", true)
	f.givenMember(t, "m1", "ada@example.com")
	f.payment.On("Charge", mock.Anything, 3.5, DefaultCard).Return(&domain.ChargeResult{OK: true}, nil).Once()
	f.notifier.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := f.svc.CheckoutBook(context.Background(), CheckoutInput{BookID: "b1", MemberID: "m1"})
	require.NoError(t, err)
	assert.Equal(t, 3.5, result.Fee)
	f.payment.AssertExpectations(t)
}

func TestCheckoutBook_NoFeeWithinFreePeriod(t *testing.T) {
	for _, days := range []int{1, 7, 14} {
		f := newFixture(t)
		f.givenBook(t, "b1", "Clean Code", "Martin", true)
		f.givenMember(t, "m1", "ada@example.com")
		f.notifier.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		result, err := f.svc.CheckoutBook(context.Background(), CheckoutInput{BookID: "b1", MemberID: "m1", Days: intPtr(days), Card: "5555"})
		require.NoError(t, err)
		assert.Zero(t, result.Fee)
		assert.Zero(t, result.Member.Fees)
		assert.False(t, result.Book.Available)
		f.payment.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestCheckoutBook_ExplicitZeroOrNegativeDaysAreFree(t *testing.T) {
	for _, days := range []int{0, -3} {
		f := newFixture(t)
		f.givenBook(t, "b1", "Clean Code", "Martin", true)
		f.givenMember(t, "m1", "ada@example.com")
		f.notifier.On("Send", mock.Anything, "ada@example.com", "Checkout", "You borrowed Clean Code. Fee: $0.00").
			Return(nil).Once()

		result, err := f.svc.CheckoutBook(context.Background(), CheckoutInput{BookID: "b1", MemberID: "m1", Days: intPtr(days), Card: "5555"})
		require.NoError(t, err, "days=%d", days)
		assert.Zero(t, result.Fee)
		assert.Empty(t, result.TransactionID)

		member, err := f.memberRepo.GetByID(context.Background(), "m1")
		require.NoError(t, err)
		assert.Zero(t, member.Fees)

		f.payment.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything, mock.Anything)
		f.notifier.AssertExpectations(t)
	}
}

func TestListMembers_DoesNotModifyInput(t *testing.T) {
	f := newFixture(t)
	f.givenMember(t, "m1", "ada@example.com")

	input := &ListMembersInput{Offset: -5, Limit: 0}
	out, err := f.svc.ListMembers(context.Background(), input)
	require.NoError(t, err)
	assert.Len(t, out.Members, 1)
	assert.Equal(t, &ListMembersInput{Offset: -5, Limit: 0}, input)
}

func TestCheckoutBook_UnavailableNeverCharges(t *testing.T) {
	f := newFixture(t)
	f.givenBook(t, "b1", "Clean Code", "Martin", false)
	f.givenMember(t, "m1", "ada@example.com")

	_, err := f.svc.CheckoutBook(context.Background(), CheckoutInput{BookID: "b1", MemberID: "m1", Days: intPtr(30)})
	assert.ErrorIs(t, err, domain.ErrBookUnavailable)

	f.payment.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutBook_SecondCheckoutFails(t *testing.T) {
	f := newFixture(t)
	f.givenBook(t, "b1", "Clean Code", "Martin", true)
	f.givenMember(t, "m1", "ada@example.com")
	f.notifier.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.CheckoutBook(context.Background(), CheckoutInput{BookID: "b1", MemberID: "m1", Days: intPtr(7)})
	require.NoError(t, err)

	_, err = f.svc.CheckoutBook(context.Background(), CheckoutInput{BookID: "b1", MemberID: "m1", Days: intPtr(7)})
	assert.ErrorIs(t, err, domain.ErrBookUnavailable)
}

func TestCheckoutBook_PaymentDeclinedLeavesStateUnchanged(t *testing.T) {
	testCases := []struct {
		name   string
		result *domain.ChargeResult
		err    error
	}{
		{"declined", &domain.ChargeResult{OK: false}, nil},
		{"gateway error", nil, errors.New("gateway timeout")},
		{"no result", nil, nil},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			f.givenBook(t, "b1", "Clean Code", "Martin", true)
			f.givenMember(t, "m1", "ada@example.com")
			f.payment.On("Charge", mock.Anything, 3.5, DefaultCard).Return(tt.result, tt.err).Once()

			_, err := f.svc.CheckoutBook(ctx, CheckoutInput{BookID: "b1", MemberID: "m1", Days: intPtr(21)})
			assert.ErrorIs(t, err, domain.ErrPaymentFailed)

			book, _ := f.bookRepo.GetByID(ctx, "b1")
			member, _ := f.memberRepo.GetByID(ctx, "m1")
			assert.True(t, book.Available)
			assert.Zero(t, member.Fees)
			f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCheckoutBook_BookNotFound(t *testing.T) {
	f := newFixture(t)
	f.givenMember(t, "m1", "ada@example.com")
	before, _ := f.store.Load()

	_, err := f.svc.CheckoutBook(context.Background(), CheckoutInput{BookID: "bX", MemberID: "m1"})
	assert.ErrorIs(t, err, domain.ErrBookNotFound)

	after, _ := f.store.Load()
	assert.Equal(t, before, after)
	f.payment.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutBook_MemberNotFound(t *testing.T) {
	f := newFixture(t)
	f.givenBook(t, "b1", "Clean Code", "Martin", true)

	_, err := f.svc.CheckoutBook(context.Background(), CheckoutInput{BookID: "b1", MemberID: "mX"})
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)

	book, _ := f.bookRepo.GetByID(context.Background(), "b1")
	assert.True(t, book.Available)
}

func TestCheckoutBook_FeesAccumulate(t *testing.T) {
	f := newFixture(t)
	f.givenBook(t, "b1", "Clean Code", "Martin", true)
	f.givenBook(t, "b2", "Design Patterns", "GoF", true)
	f.givenMember(t, "m1", "ada@example.com")
	f.payment.On("Charge", mock.Anything, mock.Anything, mock.Anything).Return(&domain.ChargeResult{OK: true}, nil)
	f.notifier.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.CheckoutBook(context.Background(), CheckoutInput{BookID: "b1", MemberID: "m1", Days: intPtr(21)})
	require.NoError(t, err)
	result, err := f.svc.CheckoutBook(context.Background(), CheckoutInput{BookID: "b2", MemberID: "m1", Days: intPtr(16)})
	require.NoError(t, err)

	assert.Equal(t, 4.5, result.Member.Fees)
}

func TestCheckoutBook_NotifierFailureStillSucceeds(t *testing.T) {
	f := newFixture(t)
	f.givenBook(t, "b1", "Clean Code", "Martin", true)
	f.givenMember(t, "m1", "ada@example.com")
	f.notifier.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("down"))

	result, err := f.svc.CheckoutBook(context.Background(), CheckoutInput{BookID: "b1", MemberID: "m1", Days: intPtr(3)})
	require.NoError(t, err)
	assert.False(t, result.Book.Available)
}

func TestCheckoutBook_FlatFeePolicy(t *testing.T) {
	f := newFixture(t)
	f.svc = NewLibraryService(f.bookRepo, f.memberRepo, f.payment, f.notifier, &FlatFeePolicy{Amount: 2}, zap.NewNop())
	f.givenBook(t, "b1", "Clean Code", "Martin", true)
	f.givenMember(t, "m1", "ada@example.com")
	f.payment.On("Charge", mock.Anything, 2.0, "9999").Return(&domain.ChargeResult{OK: true}, nil).Once()
	f.notifier.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := f.svc.CheckoutBook(context.Background(), CheckoutInput{BookID: "b1", MemberID: "m1", Days: intPtr(3), Card: "9999"})
	require.NoError(t, err)
	assert.Equal(t, 2.0, result.Fee)
	f.payment.AssertExpectations(t)
}

func TestSearch(t *testing.T) {
	f := newFixture(t)
	f.givenBook(t, "b1", "Clean Code", "Robert Martin", true)
	f.givenBook(t, "b2", "Design Patterns", "GoF", true)
	f.givenBook(t, "b3", "JavaScript: The Good Parts", "Douglas Crockford", true)

	testCases := []struct {
		term     string
		expected []string
	}{
		{"", []string{"b1", "b2", "b3"}},
		{"   ", []string{"b1", "b2", "b3"}},
		{"clean", []string{"b1"}},
		{"CODE", []string{"b1"}},
		{"martin", []string{"b1"}},
		{"gof", []string{"b2"}},
		{"t", []string{"b1", "b2", "b3"}},
		{" parts ", []string{"b3"}},
		{"tolkien", []string{}},
	}

	for _, tt := range testCases {
		books, err := f.svc.Search(context.Background(), tt.term)
		require.NoError(t, err)

		ids := make([]string, 0, len(books))
		for _, b := range books {
			ids = append(ids, b.ID)
		}
		assert.Equal(t, tt.expected, ids, "term=%q", tt.term)
	}
}

func TestReset_ClearsEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.givenBook(t, "b1", "Clean Code", "Martin", true)
	f.givenMember(t, "m1", "ada@example.com")

	require.NoError(t, f.svc.Reset(ctx))

	books, err := f.svc.ListBooks(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)

	out, err := f.svc.ListMembers(ctx, &ListMembersInput{})
	require.NoError(t, err)
	assert.Zero(t, out.Total)
}

func TestStatsAndMembersWithFees(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.givenBook(t, "b1", "Clean Code", "Martin", true)
	f.givenBook(t, "b2", "Design Patterns", "GoF", false)
	require.NoError(t, f.memberRepo.Create(ctx, &domain.Member{ID: "m1", Email: "a@x", Fees: 3.5}))
	require.NoError(t, f.memberRepo.Create(ctx, &domain.Member{ID: "m2", Email: "b@x"}))

	stats, err := f.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &LibraryStats{Books: 2, AvailableBooks: 1, Members: 2, MembersWithFees: 1, TotalFees: 3.5}, stats)

	owing, err := f.svc.MembersWithFees(ctx)
	require.NoError(t, err)
	require.Len(t, owing, 1)
	assert.Equal(t, "m1", owing[0].ID)
}

func TestGetBookAndMember_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetBook(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrBookNotFound)

	_, err = f.svc.GetMember(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}
