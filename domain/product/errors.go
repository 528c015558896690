package product

import "errors"

var (
	// ErrNotFound is returned when a product is absent or not in the requested soft-delete state.
	ErrNotFound = errors.New("product not found")
	// ErrPriceFormat is returned for a price that is not a canonical two-decimal number.
	ErrPriceFormat = errors.New("price must have exactly two decimal places")
	// ErrPriceTooLow is returned for a price below 0.01.
	ErrPriceTooLow = errors.New("price must be at least 0.01")
)
