package product

// CreateRequest is the payload for creating a product.
// Price and photo are checked beyond their tags by the product service.
type CreateRequest struct {
	ProductTypeID *uint       `json:"product_type_id" validate:"required"`
	Name          *string     `json:"name" validate:"required,min=3,max=50"`
	Price         *PriceInput `json:"price" validate:"required"`
	Photo         *string     `json:"photo" validate:"required"`
}

// UpdateRequest is the payload for updating a product.
type UpdateRequest struct {
	ProductTypeID *uint       `json:"product_type_id" validate:"omitnil"`
	Name          *string     `json:"name" validate:"omitnil,min=3,max=50"`
	Price         *PriceInput `json:"price" validate:"omitnil"`
	Photo         *string     `json:"photo" validate:"omitnil"`
}

// Response is the API representation of a product.
type Response struct {
	ID            uint    `json:"id"`
	ProductTypeID uint    `json:"product_type_id"`
	Name          string  `json:"name"`
	Price         Cents   `json:"price"`
	Photo         string  `json:"photo"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
	DeletedAt     *string `json:"deleted_at"`
}

// CreatedResponse wraps a new product in the store confirmation.
type CreatedResponse struct {
	Message string   `json:"message"`
	Product Response `json:"product"`
}

// Update is a validated change set: price already parsed and photo already stored.
type Update struct {
	ProductTypeID *uint
	Name          *string
	Price         *Cents
	Photo         *string
}

// Apply copies every supplied field onto p.
func (u Update) Apply(p *Product) {
	if u.ProductTypeID != nil {
		p.ProductTypeID = *u.ProductTypeID
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Price != nil {
		p.PriceCents = *u.Price
	}
	if u.Photo != nil {
		p.Photo = *u.Photo
	}
}
