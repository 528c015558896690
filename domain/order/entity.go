package order

import (
	"time"

	"github.com/example/pastelaria-api/domain/store"
	"gorm.io/gorm"
)

// ItemState records why a line item is or is not part of its order.
type ItemState string

const (
	// ItemActive items belong to the order.
	ItemActive ItemState = "active"
	// ItemRemoved items were dropped by an order update and never come back.
	ItemRemoved ItemState = "removed"
	// ItemDeleted items went away with their order and return when it is restored.
	ItemDeleted ItemState = "deleted"
)

// Order represents a customer order in the database.
type Order struct {
	ID         uint           `gorm:"primarykey"`
	CustomerID uint           `gorm:"not null;index"`
	Items      []Item         `gorm:"foreignKey:OrderID"`
	CreatedAt  time.Time      `gorm:"not null"`
	UpdatedAt  time.Time      `gorm:"not null"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM.
func (Order) TableName() string {
	return "orders"
}

// Item is one product line of an order.
type Item struct {
	ID        uint           `gorm:"primarykey"`
	OrderID   uint           `gorm:"not null;index"`
	ProductID uint           `gorm:"not null;index"`
	Quantity  int            `gorm:"not null"`
	State     ItemState      `gorm:"size:10;not null;default:active;index"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM.
func (Item) TableName() string {
	return "order_items"
}

// Lines returns the (product, quantity) pairs of the order's loaded items.
func (o *Order) Lines() []Line {
	lines := make([]Line, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, Line{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return lines
}

// ToResponse converts an Order with loaded items to its API representation.
func ToResponse(o *Order) Response {
	return Response{
		OrderID:      o.ID,
		CustomerID:   o.CustomerID,
		CreationDate: store.FormatTime(o.CreatedAt),
		Products:     o.Lines(),
	}
}
