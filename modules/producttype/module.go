// Package producttype exposes the product type use cases as a mono module.
package producttype

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/pastelaria-api/domain/producttype"
	"github.com/example/pastelaria-api/domain/store"
	"github.com/example/pastelaria-api/modules/cache"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"
)

// Module provides product type services.
type Module struct {
	service *Service
}

var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)

// NewModule creates the product type module over db, reading through loader.
func NewModule(db *gorm.DB, loader *cache.Loader) *Module {
	return &Module{service: NewService(producttype.NewRepository(db), loader)}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "producttype"
}

// Service returns the product type service used by the HTTP layer.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterServices registers the read-only request-reply services
// services.producttype.get and services.producttype.list.
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

	log.Printf("[product-type] Registered services: services.producttype.{get,list}")
	return nil
}

func (m *Module) get(ctx context.Context, req GetRequest, _ *mono.Msg) (producttype.Response, error) {
	return m.service.Get(ctx, req.ID)
}

func (m *Module) list(ctx context.Context, req ListRequest, _ *mono.Msg) (ListResponse, error) {
	mode, err := store.ParseMode(req.Trashed)
	if err != nil {
		return ListResponse{}, err
	}
	types, err := m.service.List(ctx, mode)
	if err != nil {
		return ListResponse{}, err
	}
	return ListResponse{ProductTypes: types, Total: len(types)}, nil
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	log.Println("[product-type] Module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[product-type] Module stopped")
	return nil
}
