// Package product exposes the product use cases as a mono module.
package product

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/pastelaria-api/domain/image"
	"github.com/example/pastelaria-api/domain/product"
	"github.com/example/pastelaria-api/domain/store"
	"github.com/example/pastelaria-api/modules/cache"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"
)

// Module provides product services.
type Module struct {
	service *Service
}

var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)

// NewModule creates the product module over db. Photos go through images
// and active reads through loader.
func NewModule(db *gorm.DB, types TypeChecker, images *image.Ingester, loader *cache.Loader) *Module {
	return &Module{service: NewService(product.NewRepository(db), types, images, loader)}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "product"
}

// Service returns the product service used by the HTTP layer.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterServices registers the read-only request-reply services
// services.product.get and services.product.list.
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

	log.Printf("[product] Registered services: services.product.{get,list}")
	return nil
}

func (m *Module) get(ctx context.Context, req GetRequest, _ *mono.Msg) (product.Response, error) {
	return m.service.Get(ctx, req.ID)
}

func (m *Module) list(ctx context.Context, req ListRequest, _ *mono.Msg) (ListResponse, error) {
	mode, err := store.ParseMode(req.Trashed)
	if err != nil {
		return ListResponse{}, err
	}
	products, err := m.service.List(ctx, mode)
	if err != nil {
		return ListResponse{}, err
	}
	return ListResponse{Products: products, Total: len(products)}, nil
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	log.Println("[product] Module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[product] Module stopped")
	return nil
}
