package producttype

import (
	"time"

	"github.com/example/pastelaria-api/domain/store"
	"gorm.io/gorm"
)

// ProductType groups products, e.g. "Pastel salgado".
type ProductType struct {
	ID        uint           `gorm:"primarykey"`
	Name      string         `gorm:"size:50;not null;index"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM.
func (ProductType) TableName() string {
	return "product_types"
}

// ToResponse converts a ProductType to its API representation.
func ToResponse(pt *ProductType) Response {
	return Response{
		ID:        pt.ID,
		Name:      pt.Name,
		CreatedAt: store.FormatTime(pt.CreatedAt),
		UpdatedAt: store.FormatTime(pt.UpdatedAt),
		DeletedAt: store.FormatDeletedAt(pt.DeletedAt),
	}
}
