package producttype

import "errors"

// ErrNotFound is returned when a product type is absent or not in the requested soft-delete state.
var ErrNotFound = errors.New("product type not found")
