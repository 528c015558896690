// Package customer exposes the customer use cases as a mono module.
package customer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/pastelaria-api/domain/customer"
	"github.com/example/pastelaria-api/domain/store"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"
)

// Module provides customer services.
type Module struct {
	service *Service
}

var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)

// NewModule creates the customer module over db.
func NewModule(db *gorm.DB) *Module {
	return &Module{service: NewService(customer.NewRepository(db))}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "customer"
}

// Service returns the customer service used by the HTTP layer.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterServices registers the read-only request-reply services
// services.customer.get and services.customer.list.
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

	log.Printf("[customer] Registered services: services.customer.{get,list}")
	return nil
}

func (m *Module) get(ctx context.Context, req GetRequest, _ *mono.Msg) (customer.Response, error) {
	return m.service.Get(ctx, req.ID)
}

func (m *Module) list(ctx context.Context, req ListRequest, _ *mono.Msg) (ListResponse, error) {
	mode, err := store.ParseMode(req.Trashed)
	if err != nil {
		return ListResponse{}, err
	}
	customers, err := m.service.List(ctx, mode)
	if err != nil {
		return ListResponse{}, err
	}
	return ListResponse{Customers: customers, Total: len(customers)}, nil
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	log.Println("[customer] Module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[customer] Module stopped")
	return nil
}
