package handlers

import (
	"errors"

	"library-desk/internal/core/domain"
	"library-desk/internal/core/services"
	"library-desk/internal/pkg/pagination"
	"library-desk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LibraryHandler handles book, member and checkout endpoints
type LibraryHandler struct {
	library *services.LibraryService
}

// NewLibraryHandler creates a new library handler
func NewLibraryHandler(library *services.LibraryService) *LibraryHandler {
	return &LibraryHandler{
		library: library,
	}
}

// AddBookRequest represents add book request body
type AddBookRequest struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// RegisterMemberRequest represents register member request body
type RegisterMemberRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CheckoutRequest represents checkout request body
type CheckoutRequest struct {
	BookID   string `json:"book_id"`
	MemberID string `json:"member_id"`
	Days     *int   `json:"days"`
	Card     string `json:"card"`
}

// ListBooks handles listing and searching books
// @Summary List or search books
// @Description Case-insensitive substring search on title and author; empty q returns all books
// @Tags Books
// @Produce json
// @Param q query string false "Search term"
// @Success 200 {object} response.Response
// @Router /books [get]
func (h *LibraryHandler) ListBooks(c *fiber.Ctx) error {
	books, err := h.library.Search(c.Context(), c.Query("q"))
	if err != nil {
		return response.InternalServerError(c, "Failed to list books")
	}

	return response.Success(c, "Books retrieved successfully", fiber.Map{
		"books": books,
		"total": len(books),
	})
}

// GetBook handles getting a book by ID
// @Summary Get book by ID
// @Tags Books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /books/{id} [get]
func (h *LibraryHandler) GetBook(c *fiber.Ctx) error {
	book, err := h.library.GetBook(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err, "Failed to get book")
	}

	return response.Success(c, "Book retrieved successfully", fiber.Map{
		"book": book,
	})
}

// AddBook handles adding a book
// @Summary Add book
// @Tags Books
// @Accept json
// @Produce json
// @Param body body AddBookRequest true "Book"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /books [post]
func (h *LibraryHandler) AddBook(c *fiber.Ctx) error {
	var req AddBookRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	book, err := h.library.AddBook(c.Context(), req.ID, req.Title, req.Author)
	if err != nil {
		return handleServiceError(c, err, "Failed to add book")
	}

	return response.Created(c, "Book added successfully", fiber.Map{
		"book": book,
	})
}

// ListMembers handles listing members
// @Summary List members
// @Tags Members
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /members [get]
func (h *LibraryHandler) ListMembers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.library.ListMembers(c.Context(), &services.ListMembersInput{
		Offset: params.Offset,
		Limit:  params.Limit,
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}

	return response.Success(c, "Members retrieved successfully",
		pagination.NewResponse(result.Members, params, result.Total))
}

// GetMember handles getting a member by ID
// @Summary Get member by ID
// @Tags Members
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /members/{id} [get]
func (h *LibraryHandler) GetMember(c *fiber.Ctx) error {
	member, err := h.library.GetMember(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err, "Failed to get member")
	}

	return response.Success(c, "Member retrieved successfully", fiber.Map{
		"member": member,
	})
}

// RegisterMember handles member registration
// @Summary Register member
// @Tags Members
// @Accept json
// @Produce json
// @Param body body RegisterMemberRequest true "Member"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /members [post]
func (h *LibraryHandler) RegisterMember(c *fiber.Ctx) error {
	var req RegisterMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.library.RegisterMember(c.Context(), req.ID, req.Name, req.Email)
	if err != nil {
		return handleServiceError(c, err, "Failed to register member")
	}

	return response.Created(c, "Member registered successfully", fiber.Map{
		"member": member,
	})
}

// Checkout handles checking a book out to a member
// @Summary Checkout book
// @Description Charges the late fee (days beyond 14 at $0.50/day) before marking the book unavailable
// @Tags Checkouts
// @Accept json
// @Produce json
// @Param body body CheckoutRequest true "Checkout"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 402 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /checkouts [post]
func (h *LibraryHandler) Checkout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.library.CheckoutBook(c.Context(), services.CheckoutInput{
		BookID:   req.BookID,
		MemberID: req.MemberID,
		Days:     req.Days,
		Card:     req.Card,
	})
	if err != nil {
		return handleServiceError(c, err, "Failed to checkout book")
	}

	return response.Created(c, "Book checked out successfully", result)
}

// handleServiceError maps domain errors to HTTP responses
func handleServiceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return response.BadRequest(c, "Book ID and title are required")
	case errors.Is(err, domain.ErrInvalidEmail):
		return response.BadRequest(c, "Invalid email")
	case errors.Is(err, domain.ErrBookNotFound):
		return response.NotFound(c, "Book not found")
	case errors.Is(err, domain.ErrMemberNotFound):
		return response.NotFound(c, "Member not found")
	case errors.Is(err, domain.ErrBookAlreadyExists):
		return response.Conflict(c, "Book already exists")
	case errors.Is(err, domain.ErrMemberAlreadyExists):
		return response.Conflict(c, "Member already exists")
	case errors.Is(err, domain.ErrBookUnavailable):
		return response.Conflict(c, "Book already checked out")
	case errors.Is(err, domain.ErrPaymentFailed):
		return response.PaymentRequired(c, "Payment failed")
	default:
		return response.InternalServerError(c, fallback)
	}
}
