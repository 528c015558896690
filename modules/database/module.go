// Package database runs the schema migration and reports database health.
package database

import (
	"context"
	"fmt"
	"log"

	"github.com/example/pastelaria-api/domain/customer"
	"github.com/example/pastelaria-api/domain/order"
	"github.com/example/pastelaria-api/domain/product"
	"github.com/example/pastelaria-api/domain/producttype"
	"github.com/example/pastelaria-api/domain/store"
	"github.com/go-monolith/mono"
	"gorm.io/gorm"
)

// Module owns the schema of the shared database.
// The connection itself is opened and closed by main.
type Module struct {
	db     *gorm.DB
	driver string
}

var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates the database module.
func NewModule(db *gorm.DB, driver string) *Module {
	return &Module{db: db, driver: driver}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "database"
}

// Migrate creates or updates every table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&customer.Customer{},
		&producttype.ProductType{},
		&product.Product{},
		&order.Order{},
		&order.Item{},
	)
}

// Start runs the migrations.
func (m *Module) Start(_ context.Context) error {
	if m.db == nil {
		return fmt.Errorf("database not initialized")
	}
	if err := Migrate(m.db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Printf("[database] Migrations applied (driver: %s)", m.driver)
	return nil
}

// Stop is a no-op; main closes the connection after every module stopped.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[database] Module stopped")
	return nil
}

// Health pings the database.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{Healthy: false, Message: "database not initialized"}
	}
	if err := store.Ping(ctx, m.db); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{"driver": m.driver},
	}
}
