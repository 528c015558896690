// Package api serves the REST API over Fiber.
package api

import (
	"context"
	"fmt"
	"log"

	"github.com/example/pastelaria-api/domain/customer"
	"github.com/example/pastelaria-api/domain/order"
	"github.com/example/pastelaria-api/domain/product"
	"github.com/example/pastelaria-api/domain/producttype"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// CustomerService is the customer resource.
type CustomerService = Resource[customer.CreateRequest, customer.UpdateRequest, customer.Response, customer.Response]

// ProductTypeService is the product type resource.
type ProductTypeService = Resource[producttype.CreateRequest, producttype.UpdateRequest, producttype.Response, producttype.Response]

// ProductService is the product resource.
type ProductService = Resource[product.CreateRequest, product.UpdateRequest, product.Response, product.Response]

// OrderService is the order resource.
type OrderService = Resource[order.CreateRequest, order.UpdateRequest, order.Response, order.CreatedResponse]

// HealthChecker is a module that reports its health.
type HealthChecker interface {
	Name() string
	Health(ctx context.Context) mono.HealthStatus
}

// Services are the use cases behind the routes.
type Services struct {
	Customers    CustomerService
	ProductTypes ProductTypeService
	Products     ProductService
	Orders       OrderService
}

// Config holds API module configuration.
type Config struct {
	Port        int
	AppName     string
	StorageRoot string
	// AccessLog enables the request logger middleware.
	AccessLog bool
}

// Module provides the HTTP API.
type Module struct {
	cfg     Config
	app     *fiber.App
	metrics *Metrics
	checks  []HealthChecker
}

var _ mono.Module = (*Module)(nil)

// NewModule creates the API module and its routes.
func NewModule(cfg Config, svcs Services, tokens TokenValidator, checks ...HealthChecker) *Module {
	m := &Module{
		cfg:     cfg,
		metrics: NewMetrics("pastelaria"),
		checks:  checks,
	}
	m.app = m.newApp(svcs, tokens)
	return m
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

func (m *Module) newApp(svcs Services, tokens TokenValidator) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               m.cfg.AppName,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())
	if m.cfg.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(cors.New())
	app.Use(m.metrics.Middleware())

	app.Get("/health", m.health)
	app.Get("/metrics", m.metrics.Handler())
	if m.cfg.StorageRoot != "" {
		app.Static("/storage", m.cfg.StorageRoot)
	}

	api := app.Group("/api")
	api.Get("/user", AuthMiddleware(tokens), User)

	newResourceHandlers(svcs.Customers, "Customer", customer.ErrNotFound, nil).
		mount(api.Group("/customers"))
	newResourceHandlers(svcs.ProductTypes, "Product type", producttype.ErrNotFound, nil).
		mount(api.Group("/product-types"))
	newResourceHandlers(svcs.Products, "Product", product.ErrNotFound, func(p product.Response) any {
		return product.CreatedResponse{Message: "Product created successfully", Product: p}
	}).mount(api.Group("/products"))
	newResourceHandlers(svcs.Orders, "Order", order.ErrNotFound, nil).
		mount(api.Group("/orders"))

	return app
}

// Start starts the HTTP server.
func (m *Module) Start(_ context.Context) error {
	go func() {
		addr := fmt.Sprintf(":%d", m.cfg.Port)
		log.Printf("[api] Starting HTTP server on %s", addr)
		if err := m.app.Listen(addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()
	return nil
}

// Stop stops the HTTP server gracefully.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// App returns the Fiber app (for testing).
func (m *Module) App() *fiber.App {
	return m.app
}

func (m *Module) health(c *fiber.Ctx) error {
	resp := HealthResponse{Status: "healthy", Modules: make(map[string]ModuleHealth, len(m.checks))}

	for _, hc := range m.checks {
		st := hc.Health(c.UserContext())
		resp.Modules[hc.Name()] = ModuleHealth{Healthy: st.Healthy, Message: st.Message, Details: st.Details}
		if !st.Healthy {
			resp.Status = "unhealthy"
		}
	}

	if resp.Status != "healthy" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
