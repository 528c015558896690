package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// CustomerSnapshot is the customer data captured when an order is placed.
type CustomerSnapshot struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	Zipcode      string `json:"zipcode"`
	// DateOfBirth is formatted dd/mm/yyyy.
	DateOfBirth string `json:"date_of_birth"`
}

// ItemSnapshot is one order line with the product data at order time.
type ItemSnapshot struct {
	ProductID      uint   `json:"product_id"`
	ProductName    string `json:"product_name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// SubtotalCents is quantity times unit price.
func (i ItemSnapshot) SubtotalCents() int64 {
	return int64(i.Quantity) * i.UnitPriceCents
}

// OrderCreatedEvent is emitted after an order and its items are committed.
type OrderCreatedEvent struct {
	OrderID     uint             `json:"order_id"`
	OrderNumber string           `json:"order_number"`
	CreatedAt   time.Time        `json:"created_at"`
	Customer    CustomerSnapshot `json:"customer"`
	Items       []ItemSnapshot   `json:"items"`
}

// TotalCents sums every item subtotal.
func (e OrderCreatedEvent) TotalCents() int64 {
	var total int64
	for _, it := range e.Items {
		total += it.SubtotalCents()
	}
	return total
}

// OrderCreatedV1 is the typed event definition for order creation.
// Subject: events.order.v1.order-created
var OrderCreatedV1 = helper.EventDefinition[OrderCreatedEvent](
	"order", "OrderCreated", "v1",
)
