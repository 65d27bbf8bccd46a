// Package common defines sentinel errors shared by the warranty keeper
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Validation errors raised by the collection manager on user input.
	ErrValidation = errors.New("validation error")
	ErrEmptyName  = errors.New("product name is required")
	ErrEmptyShop  = errors.New("shop name is required")

	// ErrUnknownFilter is returned when a list filter name is not recognised.
	ErrUnknownFilter = errors.New("unknown filter")
)
