package customer

import "github.com/example/pastelaria-api/domain/customer"

// GetRequest is the payload of services.customer.get.
type GetRequest struct {
	ID uint `json:"id"`
}

// ListRequest is the payload of services.customer.list.
// Trashed is "", "with" or "only".
type ListRequest struct {
	Trashed string `json:"trashed,omitempty"`
}

// ListResponse is the reply of services.customer.list.
type ListResponse struct {
	Customers []customer.Response `json:"customers"`
	Total     int                 `json:"total"`
}
