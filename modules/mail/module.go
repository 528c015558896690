// Package mail sends order confirmation emails. It consumes OrderCreated
// events and hands rendered messages to a bounded worker pool.
package mail

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/example/pastelaria-api/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/google/uuid"
)

// Config holds mail module configuration.
type Config struct {
	From    string
	AppName string
	Pool    PoolConfig
}

// Module renders and dispatches order confirmations.
type Module struct {
	cfg        Config
	mailer     Mailer
	dispatcher *Dispatcher
}

var _ mono.Module = (*Module)(nil)
var _ mono.EventConsumerModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates the mail module delivering through mailer.
func NewModule(cfg Config, mailer Mailer) *Module {
	if cfg.AppName == "" {
		cfg.AppName = "Pastelaria"
	}
	return &Module{
		cfg:        cfg,
		mailer:     mailer,
		dispatcher: NewDispatcher(cfg.Pool, mailer),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "mail"
}

// Dispatcher returns the delivery pool.
func (m *Module) Dispatcher() *Dispatcher {
	return m.dispatcher
}

// RegisterEventConsumers subscribes to OrderCreated.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.OrderCreatedV1, m.handleOrderCreated, m); err != nil {
		return fmt.Errorf("failed to register OrderCreated consumer: %w", err)
	}

	log.Printf("[mail] Registered event consumers: OrderCreated")
	return nil
}

func (m *Module) handleOrderCreated(_ context.Context, event events.OrderCreatedEvent, _ *mono.Msg) error {
	msg, err := m.confirmation(event)
	if err != nil {
		log.Printf("[mail] Failed to build confirmation for order %s: %v", event.OrderNumber, err)
		return nil
	}

	if err := m.dispatcher.Enqueue(msg); err != nil {
		log.Printf("[mail] Failed to enqueue confirmation for order %s: %v", event.OrderNumber, err)
		return nil
	}

	log.Printf("[mail] Queued confirmation %s for order %s to %s", msg.ID, event.OrderNumber, msg.To)
	return nil
}

func (m *Module) confirmation(event events.OrderCreatedEvent) (Message, error) {
	body, err := RenderConfirmation(event, m.cfg.AppName)
	if err != nil {
		return Message{}, err
	}
	return Message{
		ID:      uuid.New().String(),
		From:    m.cfg.From,
		To:      event.Customer.Email,
		Subject: Subject(event.OrderNumber),
		Body:    body,
		QueueAt: time.Now(),
	}, nil
}

// Start launches the delivery workers.
func (m *Module) Start(_ context.Context) error {
	if err := m.dispatcher.Start(context.Background()); err != nil {
		return fmt.Errorf("failed to start mail dispatcher: %w", err)
	}
	log.Println("[mail] Module started - listening for order events")
	return nil
}

// Stop drains the queue within ctx.
func (m *Module) Stop(ctx context.Context) error {
	if err := m.dispatcher.Stop(ctx); err != nil {
		log.Printf("[mail] Stop: %v", err)
	}
	log.Println("[mail] Module stopped")
	return nil
}

// Health reports the dispatcher state and counters.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	stats := m.dispatcher.Stats()
	status := mono.HealthStatus{
		Healthy: m.dispatcher.IsRunning(),
		Message: "operational",
		Details: map[string]any{
			"sent":     stats.Sent,
			"failed":   stats.Failed,
			"rejected": stats.Rejected,
			"queued":   stats.Queued,
		},
	}
	if !status.Healthy {
		status.Message = "dispatcher not running"
	}
	return status
}
