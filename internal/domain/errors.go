package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidStatus indicates a status outside the enumerated set.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidQuantity indicates a non-positive cart quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")
)
