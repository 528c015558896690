package customer

// CreateRequest is the payload for creating a customer.
type CreateRequest struct {
	Name         *string `json:"name" validate:"required,min=3,max=50"`
	Email        *string `json:"email" validate:"required,email,max=255"`
	Phone        *string `json:"phone" validate:"required,phone"`
	DateOfBirth  *string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Address      *string `json:"address" validate:"required,min=3,max=50"`
	Complement   *string `json:"complement" validate:"required,min=3,max=50"`
	Neighborhood *string `json:"neighborhood" validate:"required,min=3,max=50"`
	Zipcode      *string `json:"zipcode" validate:"required,zipcode"`
}

// UpdateRequest is the payload for updating a customer.
// Omitted fields keep their stored value.
type UpdateRequest struct {
	Name         *string `json:"name" validate:"omitnil,min=3,max=50"`
	Email        *string `json:"email" validate:"omitnil,email,max=255"`
	Phone        *string `json:"phone" validate:"omitnil,phone"`
	DateOfBirth  *string `json:"date_of_birth" validate:"omitnil,datetime=2006-01-02"`
	Address      *string `json:"address" validate:"omitnil,min=3,max=50"`
	Complement   *string `json:"complement" validate:"omitnil,min=3,max=50"`
	Neighborhood *string `json:"neighborhood" validate:"omitnil,min=3,max=50"`
	Zipcode      *string `json:"zipcode" validate:"omitnil,zipcode"`
}

// Response is the API representation of a customer.
type Response struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	DateOfBirth  string  `json:"date_of_birth"`
	Address      string  `json:"address"`
	Complement   string  `json:"complement"`
	Neighborhood string  `json:"neighborhood"`
	Zipcode      string  `json:"zipcode"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
	DeletedAt    *string `json:"deleted_at"`
}

// Entity builds a new Customer from a validated create request.
func (r CreateRequest) Entity() *Customer {
	c := &Customer{}
	UpdateRequest(r).Apply(c)
	return c
}

// Apply copies every supplied field onto c.
func (r UpdateRequest) Apply(c *Customer) {
	set(&c.Name, r.Name)
	set(&c.Email, r.Email)
	set(&c.Phone, r.Phone)
	set(&c.DateOfBirth, r.DateOfBirth)
	set(&c.Address, r.Address)
	set(&c.Complement, r.Complement)
	set(&c.Neighborhood, r.Neighborhood)
	set(&c.Zipcode, r.Zipcode)
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
