package producttype

// CreateRequest is the payload for creating a product type.
type CreateRequest struct {
	Name *string `json:"name" validate:"required,min=3,max=50"`
}

// UpdateRequest is the payload for updating a product type.
type UpdateRequest struct {
	Name *string `json:"name" validate:"omitnil,min=3,max=50"`
}

// Response is the API representation of a product type.
type Response struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
	DeletedAt *string `json:"deleted_at"`
}

// Entity builds a new ProductType from a validated create request.
func (r CreateRequest) Entity() *ProductType {
	pt := &ProductType{}
	UpdateRequest(r).Apply(pt)
	return pt
}

// Apply copies every supplied field onto pt.
func (r UpdateRequest) Apply(pt *ProductType) {
	if r.Name != nil {
		pt.Name = *r.Name
	}
}
