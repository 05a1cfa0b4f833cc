package domain

import "errors"

var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrSessionNotFound is returned when a cart session does not exist or has expired
	ErrSessionNotFound = errors.New("cart session not found")

	// ErrCatalogUnavailable is returned when no catalog snapshot has been loaded yet
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrOutOfStock is returned when a sold out product is added to a cart
	ErrOutOfStock = errors.New("product out of stock")

	// ErrInternal is returned when an internal error occurs
	ErrInternal = errors.New("internal error")
)
