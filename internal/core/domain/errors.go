package domain

import "errors"

// ErrNotFound is returned by repositories when no record has the requested id
var ErrNotFound = errors.New("resource not found")

// Catalogue errors
var (
	ErrMissingFields     = errors.New("missing fields")
	ErrBookNotFound      = errors.New("book not found")
	ErrBookAlreadyExists = errors.New("book already exists")
	ErrBookUnavailable   = errors.New("book already checked out")
)

// Member errors
var (
	ErrInvalidEmail        = errors.New("invalid email")
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberAlreadyExists = errors.New("member already exists")
)

// Checkout errors
var (
	ErrPaymentFailed = errors.New("payment failed")
)
