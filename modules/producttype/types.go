package producttype

import "github.com/example/pastelaria-api/domain/producttype"

// GetRequest is the payload of services.producttype.get.
type GetRequest struct {
	ID uint `json:"id"`
}

// ListRequest is the payload of services.producttype.list.
type ListRequest struct {
	Trashed string `json:"trashed,omitempty"`
}

// ListResponse is the reply of services.producttype.list.
type ListResponse struct {
	ProductTypes []producttype.Response `json:"product_types"`
	Total        int                    `json:"total"`
}
