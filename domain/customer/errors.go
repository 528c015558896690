package customer

import "errors"

var (
	// ErrNotFound is returned when a customer is absent or not in the requested soft-delete state.
	ErrNotFound = errors.New("customer not found")
	// ErrEmailTaken is returned when another non-deleted customer already uses the email.
	ErrEmailTaken = errors.New("customer email already taken")
)
