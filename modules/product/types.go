package product

import "github.com/example/pastelaria-api/domain/product"

// GetRequest is the payload of services.product.get.
type GetRequest struct {
	ID uint `json:"id"`
}

// ListRequest is the payload of services.product.list.
type ListRequest struct {
	Trashed string `json:"trashed,omitempty"`
}

// ListResponse is the reply of services.product.list.
type ListResponse struct {
	Products []product.Response `json:"products"`
	Total    int                `json:"total"`
}
