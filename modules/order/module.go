// Package order exposes the order use cases as a mono module and emits
// OrderCreated after each committed order.
package order

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/pastelaria-api/domain/customer"
	"github.com/example/pastelaria-api/domain/order"
	"github.com/example/pastelaria-api/domain/product"
	"github.com/example/pastelaria-api/domain/store"
	"github.com/example/pastelaria-api/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"
)

// Module provides order services.
type Module struct {
	service  *Service
	eventBus mono.EventBus
}

var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.EventEmitterModule = (*Module)(nil)

// NewModule creates the order module over db.
func NewModule(db *gorm.DB) *Module {
	return &Module{
		service: NewService(order.NewRepository(db), customer.NewRepository(db), product.NewRepository(db)),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "order"
}

// Service returns the order service used by the HTTP layer.
func (m *Module) Service() *Service {
	return m.service
}

// SetEventBus wires the bus OrderCreated is published on.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
	m.service.SetPublisher(func(e events.OrderCreatedEvent) error {
		return events.OrderCreatedV1.Publish(bus, e, nil)
	})
}

// EmitEvents declares the events this module publishes.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.OrderCreatedV1.ToBase(),
	}
}

// RegisterServices registers services.order.get and services.order.list.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.get,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.list,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	log.Printf("[order] Registered services: services.order.{get,list}")
	return nil
}

func (m *Module) get(ctx context.Context, req GetRequest, _ *mono.Msg) (order.Response, error) {
	return m.service.Get(ctx, req.ID)
}

func (m *Module) list(ctx context.Context, req ListRequest, _ *mono.Msg) (ListResponse, error) {
	mode, err := store.ParseMode(req.Trashed)
	if err != nil {
		return ListResponse{}, err
	}
	orders, err := m.service.List(ctx, mode)
	if err != nil {
		return ListResponse{}, err
	}
	return ListResponse{Orders: orders, Total: len(orders)}, nil
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	if m.eventBus == nil {
		log.Println("[order] Warning: eventBus not set, order confirmations will not be sent")
	}
	log.Println("[order] Module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[order] Module stopped")
	return nil
}
