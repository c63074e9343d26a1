// Package errors defines the sentinel errors of the catalog backend.
package errors

import "errors"

var (
	// ErrProductNotFound is returned when no product exists with the given id.
	ErrProductNotFound = errors.New("product not found")
	// ErrProductExists is returned when creating a product whose id is taken.
	ErrProductExists = errors.New("product id already exists")
	// ErrRevisionMismatch is returned when the revision date is not exactly
	// one year after the release date.
	ErrRevisionMismatch = errors.New("revision date must be one year after release date")
)
