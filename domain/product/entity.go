package product

import (
	"time"

	"github.com/example/pastelaria-api/domain/store"
	"gorm.io/gorm"
)

// Product represents a sellable item in the database.
type Product struct {
	ID            uint           `gorm:"primarykey"`
	ProductTypeID uint           `gorm:"not null;index"`
	Name          string         `gorm:"size:50;not null;index"`
	PriceCents    Cents          `gorm:"column:price_cents;not null"`
	Photo         string         `gorm:"size:255;not null"`
	CreatedAt     time.Time      `gorm:"not null"`
	UpdatedAt     time.Time      `gorm:"not null"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM.
func (Product) TableName() string {
	return "products"
}

// ToResponse converts a Product to its API representation.
func ToResponse(p *Product) Response {
	return Response{
		ID:            p.ID,
		ProductTypeID: p.ProductTypeID,
		Name:          p.Name,
		Price:         p.PriceCents,
		Photo:         p.Photo,
		CreatedAt:     store.FormatTime(p.CreatedAt),
		UpdatedAt:     store.FormatTime(p.UpdatedAt),
		DeletedAt:     store.FormatDeletedAt(p.DeletedAt),
	}
}
