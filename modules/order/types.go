package order

import "github.com/example/pastelaria-api/domain/order"

// GetRequest is the payload of services.order.get.
type GetRequest struct {
	ID uint `json:"id"`
}

// ListRequest is the payload of services.order.list.
type ListRequest struct {
	Trashed string `json:"trashed,omitempty"`
}

// ListResponse is the reply of services.order.list.
type ListResponse struct {
	Orders []order.Response `json:"orders"`
	Total  int              `json:"total"`
}
