package customer

import (
	"time"

	"github.com/example/pastelaria-api/domain/store"
	"gorm.io/gorm"
)

// Customer represents a customer in the database.
// Email is unique among non-deleted customers only, enforced by a partial index.
type Customer struct {
	ID           uint           `gorm:"primarykey"`
	Name         string         `gorm:"size:50;not null;index"`
	Email        string         `gorm:"size:255;not null;uniqueIndex:idx_customers_email_active,where:deleted_at IS NULL"`
	Phone        string         `gorm:"size:20;not null"`
	DateOfBirth  string         `gorm:"size:10;not null"`
	Address      string         `gorm:"size:50;not null"`
	Complement   string         `gorm:"size:50;not null"`
	Neighborhood string         `gorm:"size:50;not null"`
	Zipcode      string         `gorm:"size:9;not null"`
	CreatedAt    time.Time      `gorm:"not null"`
	UpdatedAt    time.Time      `gorm:"not null"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM.
func (Customer) TableName() string {
	return "customers"
}

// BirthDate formats DateOfBirth as dd/mm/yyyy.
func (c *Customer) BirthDate() string {
	t, err := time.Parse("2006-01-02", c.DateOfBirth)
	if err != nil {
		return c.DateOfBirth
	}
	return t.Format("02/01/2006")
}

// ToResponse converts a Customer to its API representation.
func ToResponse(c *Customer) Response {
	return Response{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		DateOfBirth:  c.DateOfBirth,
		Address:      c.Address,
		Complement:   c.Complement,
		Neighborhood: c.Neighborhood,
		Zipcode:      c.Zipcode,
		CreatedAt:    store.FormatTime(c.CreatedAt),
		UpdatedAt:    store.FormatTime(c.UpdatedAt),
		DeletedAt:    store.FormatDeletedAt(c.DeletedAt),
	}
}
