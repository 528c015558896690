package order

import "errors"

// ErrNotFound is returned when an order is absent or not in the requested soft-delete state.
var ErrNotFound = errors.New("order not found")
