package order

import "github.com/example/pastelaria-api/domain/customer"

// Line is a desired (product, quantity) pair.
type Line struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// LineRequest is one submitted order line.
type LineRequest struct {
	ProductID *uint `json:"product_id" validate:"required"`
	Quantity  *int  `json:"quantity" validate:"required,min=1,max=50"`
}

// CreateRequest is the payload for placing an order.
type CreateRequest struct {
	CustomerID *uint         `json:"customer_id" validate:"required"`
	Products   []LineRequest `json:"products" validate:"required,min=1,dive"`
}

// UpdateRequest is the payload for editing an order's lines.
// CustomerID may be sent but must match the stored value.
type UpdateRequest struct {
	CustomerID *uint         `json:"customer_id" validate:"omitnil"`
	Products   []LineRequest `json:"products" validate:"required,min=1,dive"`
}

// Response is the API representation of an order.
type Response struct {
	OrderID      uint   `json:"order_id"`
	CustomerID   uint   `json:"customer_id"`
	CreationDate string `json:"creation_date"`
	Products     []Line `json:"products"`
}

// CreatedResponse is the body returned after placing an order.
type CreatedResponse struct {
	Message string        `json:"message"`
	Order   CreatedDetail `json:"order"`
}

// CreatedDetail is an order response with its customer nested.
type CreatedDetail struct {
	Response
	Customer customer.Response `json:"customer"`
}

// ToLines converts validated request lines.
func ToLines(reqs []LineRequest) []Line {
	lines := make([]Line, 0, len(reqs))
	for _, r := range reqs {
		if r.ProductID == nil || r.Quantity == nil {
			continue
		}
		lines = append(lines, Line{ProductID: *r.ProductID, Quantity: *r.Quantity})
	}
	return lines
}

// DuplicateProducts returns the product ids submitted more than once, in first-seen order.
func DuplicateProducts(lines []Line) []uint {
	seen := make(map[uint]int, len(lines))
	var dups []uint
	for _, l := range lines {
		seen[l.ProductID]++
		if seen[l.ProductID] == 2 {
			dups = append(dups, l.ProductID)
		}
	}
	return dups
}
