package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/example/pastelaria-api/domain/customer"
	"github.com/example/pastelaria-api/domain/order"
	"github.com/example/pastelaria-api/domain/product"
	"github.com/example/pastelaria-api/domain/store"
	"github.com/example/pastelaria-api/domain/validation"
	"github.com/example/pastelaria-api/events"
)

const (
	msgCustomerInvalid   = "The selected customer id is invalid."
	msgCustomerImmutable = "The customer id field cannot be changed."
	msgProductInvalid    = "The selected product id is invalid."
	msgDuplicateProducts = "The products field must not contain repeated product_id values."
	msgCreated           = "Order created successfully"
)

// CustomerFinder loads customers.
type CustomerFinder interface {
	FindByID(ctx context.Context, id uint, mode store.Mode) (*customer.Customer, error)
}

// ProductFinder loads active products by id.
type ProductFinder interface {
	FindByIDs(ctx context.Context, ids []uint) (map[uint]product.Product, error)
}

// Publisher announces a committed order.
type Publisher func(events.OrderCreatedEvent) error

// Service implements the order use cases.
type Service struct {
	orders    *order.Repository
	customers CustomerFinder
	products  ProductFinder
	publish   Publisher
}

// NewService creates a new order service. Events are dropped until SetPublisher is called.
func NewService(orders *order.Repository, customers CustomerFinder, products ProductFinder) *Service {
	return &Service{orders: orders, customers: customers, products: products}
}

// SetPublisher sets where OrderCreated events go.
func (s *Service) SetPublisher(p Publisher) {
	s.publish = p
}

// List returns the orders visible under mode.
func (s *Service) List(ctx context.Context, mode store.Mode) ([]order.Response, error) {
	orders, err := s.orders.List(ctx, mode)
	if err != nil {
		return nil, err
	}
	out := make([]order.Response, 0, len(orders))
	for i := range orders {
		out = append(out, order.ToResponse(&orders[i]))
	}
	return out, nil
}

// Get returns an active order.
func (s *Service) Get(ctx context.Context, id uint) (order.Response, error) {
	o, err := s.orders.FindByID(ctx, id, store.Active)
	if err != nil {
		return order.Response{}, err
	}
	return order.ToResponse(o), nil
}

// Create validates req, stores the order with its items and publishes OrderCreated.
func (s *Service) Create(ctx context.Context, req order.CreateRequest) (order.CreatedResponse, error) {
	errs := validation.Struct(req)

	var c *customer.Customer
	if req.CustomerID != nil {
		found, err := s.customers.FindByID(ctx, *req.CustomerID, store.Active)
		switch {
		case errors.Is(err, customer.ErrNotFound):
			errs.Add("customer_id", msgCustomerInvalid)
		case err != nil:
			return order.CreatedResponse{}, err
		default:
			c = found
		}
	}

	catalog, err := s.checkLines(ctx, req.Products, errs)
	if err != nil {
		return order.CreatedResponse{}, err
	}
	if errs.Any() {
		return order.CreatedResponse{}, errs
	}

	o, err := s.orders.Create(ctx, c.ID, order.ToLines(req.Products))
	if err != nil {
		return order.CreatedResponse{}, err
	}

	s.announce(o, c, catalog)

	return order.CreatedResponse{
		Message: msgCreated,
		Order: order.CreatedDetail{
			Response: order.ToResponse(o),
			Customer: customer.ToResponse(c),
		},
	}, nil
}

// Update reconciles the lines of an active order with req.Products.
func (s *Service) Update(ctx context.Context, id uint, req order.UpdateRequest) (order.Response, error) {
	o, err := s.orders.FindByID(ctx, id, store.Active)
	if err != nil {
		return order.Response{}, err
	}

	errs := validation.Struct(req)
	if req.CustomerID != nil && *req.CustomerID != o.CustomerID {
		errs.Add("customer_id", msgCustomerImmutable)
	}
	if _, err := s.checkLines(ctx, req.Products, errs); err != nil {
		return order.Response{}, err
	}
	if errs.Any() {
		return order.Response{}, errs
	}

	updated, err := s.orders.ReplaceLines(ctx, id, order.ToLines(req.Products))
	if err != nil {
		return order.Response{}, err
	}
	return order.ToResponse(updated), nil
}

// Delete soft-deletes an active order and its items.
func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.orders.Delete(ctx, id)
}

// Restore brings back a soft-deleted order with the items it had when deleted.
func (s *Service) Restore(ctx context.Context, id uint) error {
	return s.orders.Restore(ctx, id)
}

// checkLines rejects repeated and unknown products. It returns the active
// products referenced by reqs keyed by id.
func (s *Service) checkLines(ctx context.Context, reqs []order.LineRequest, errs validation.Errors) (map[uint]product.Product, error) {
	lines := order.ToLines(reqs)
	if len(order.DuplicateProducts(lines)) > 0 {
		errs.Add("products", msgDuplicateProducts)
	}

	ids := make([]uint, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	catalog, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i, r := range reqs {
		if r.ProductID == nil {
			continue
		}
		if _, ok := catalog[*r.ProductID]; !ok {
			errs.Add(fmt.Sprintf("products.%d.product_id", i), msgProductInvalid)
		}
	}
	return catalog, nil
}

// announce publishes OrderCreated. Delivery problems never fail the order.
func (s *Service) announce(o *order.Order, c *customer.Customer, catalog map[uint]product.Product) {
	if s.publish == nil {
		log.Printf("[order] Warning: no publisher set, order %d confirmation not sent", o.ID)
		return
	}

	event := events.OrderCreatedEvent{
		OrderID:     o.ID,
		OrderNumber: strconv.FormatUint(uint64(o.ID), 10),
		CreatedAt:   o.CreatedAt,
		Customer: events.CustomerSnapshot{
			Name:         c.Name,
			Email:        c.Email,
			Phone:        c.Phone,
			Address:      c.Address,
			Complement:   c.Complement,
			Neighborhood: c.Neighborhood,
			Zipcode:      c.Zipcode,
			DateOfBirth:  c.BirthDate(),
		},
		Items: make([]events.ItemSnapshot, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		p := catalog[it.ProductID]
		event.Items = append(event.Items, events.ItemSnapshot{
			ProductID:      it.ProductID,
			ProductName:    p.Name,
			Quantity:       it.Quantity,
			UnitPriceCents: int64(p.PriceCents),
		})
	}

	if err := s.publish(event); err != nil {
		log.Printf("[order] Warning: failed to publish OrderCreated event for order %d: %v", o.ID, err)
	}
}
