package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidProduct indicates a product with a malformed id or price.
	ErrInvalidProduct = errors.New("invalid product")
	// ErrAlreadyInCart indicates the product is already held in the cart.
	ErrAlreadyInCart = errors.New("product already in cart")
)
