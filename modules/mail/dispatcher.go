package mail

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrQueueFull is returned by Enqueue when every queue slot is taken.
	ErrQueueFull = errors.New("mail queue is full")
	// ErrNotRunning is returned by Enqueue before Start or after Stop.
	ErrNotRunning = errors.New("mail dispatcher is not running")
)

// PoolConfig holds dispatcher configuration.
type PoolConfig struct {
	NumWorkers     int
	QueueSize      int
	MaxRetries     int
	BaseRetryDelay time.Duration
	MaxRetryDelay  time.Duration
	SendTimeout    time.Duration
}

// DefaultPoolConfig returns the default dispatcher configuration.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		NumWorkers:     2,
		QueueSize:      100,
		MaxRetries:     3,
		BaseRetryDelay: time.Second,
		MaxRetryDelay:  30 * time.Second,
		SendTimeout:    30 * time.Second,
	}
}

// DispatcherStats is a snapshot of the dispatcher counters.
type DispatcherStats struct {
	Sent     uint64 `json:"sent"`
	Failed   uint64 `json:"failed"`
	Rejected uint64 `json:"rejected"`
	Queued   int    `json:"queued"`
}

// Dispatcher delivers queued messages on a fixed set of workers, retrying
// failed sends with exponential backoff.
type Dispatcher struct {
	cfg    PoolConfig
	mailer Mailer

	jobs    chan Message
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	mu      sync.RWMutex
	running bool

	sent     atomic.Uint64
	failed   atomic.Uint64
	rejected atomic.Uint64
}

// NewDispatcher creates a stopped dispatcher.
func NewDispatcher(cfg PoolConfig, mailer Mailer) *Dispatcher {
	def := DefaultPoolConfig()
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = def.NumWorkers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = def.MaxRetries
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = def.SendTimeout
	}
	return &Dispatcher{cfg: cfg, mailer: mailer}
}

// Start launches the workers.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return fmt.Errorf("dispatcher is already running")
	}

	d.jobs = make(chan Message, d.cfg.QueueSize)
	workerCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.cfg.NumWorkers; i++ {
		id := fmt.Sprintf("mail-worker-%d", i+1)
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.run(workerCtx, id, d.jobs)
		}()
	}

	d.running = true
	log.Printf("[mail] Dispatcher started with %d workers (queue: %d)", d.cfg.NumWorkers, d.cfg.QueueSize)
	return nil
}

// Enqueue queues msg without blocking.
func (d *Dispatcher) Enqueue(msg Message) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.running {
		return ErrNotRunning
	}

	select {
	case d.jobs <- msg:
		return nil
	default:
		d.rejected.Add(1)
		return ErrQueueFull
	}
}

// Stop stops accepting messages and waits for the queue to drain.
// When ctx expires first, in-flight retries are abandoned.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return nil
	}
	d.running = false
	close(d.jobs)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		log.Println("[mail] All workers stopped gracefully")
		return nil
	case <-ctx.Done():
		d.cancel()
		log.Println("[mail] Timeout waiting for mail queue to drain")
		return ctx.Err()
	}
}

// IsRunning reports whether the dispatcher accepts messages.
func (d *Dispatcher) IsRunning() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.running
}

// Stats returns the current counters.
func (d *Dispatcher) Stats() DispatcherStats {
	d.mu.RLock()
	queued := len(d.jobs)
	d.mu.RUnlock()

	return DispatcherStats{
		Sent:     d.sent.Load(),
		Failed:   d.failed.Load(),
		Rejected: d.rejected.Load(),
		Queued:   queued,
	}
}

func (d *Dispatcher) run(ctx context.Context, id string, jobs <-chan Message) {
	for msg := range jobs {
		d.deliver(ctx, id, msg)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, id string, msg Message) {
	for attempt := 1; ; attempt++ {
		sendCtx, cancel := context.WithTimeout(ctx, d.cfg.SendTimeout)
		err := d.mailer.Send(sendCtx, msg)
		cancel()

		if err == nil {
			d.sent.Add(1)
			log.Printf("[%s] Delivered %s to %s", id, msg.ID, msg.To)
			return
		}

		if attempt >= d.cfg.MaxRetries {
			d.failed.Add(1)
			log.Printf("[%s] Giving up on %s to %s after %d attempts: %v", id, msg.ID, msg.To, attempt, err)
			return
		}

		delay := d.retryDelay(attempt)
		log.Printf("[%s] Send %s failed (attempt %d/%d), retrying in %v: %v", id, msg.ID, attempt, d.cfg.MaxRetries, delay, err)
		if !sleepWithContext(ctx, delay) {
			d.failed.Add(1)
			log.Printf("[%s] Abandoned %s to %s: %v", id, msg.ID, msg.To, ctx.Err())
			return
		}
	}
}

// retryDelay is BaseRetryDelay * 2^(attempt-1), capped at MaxRetryDelay.
func (d *Dispatcher) retryDelay(attempt int) time.Duration {
	delay := time.Duration(float64(d.cfg.BaseRetryDelay) * math.Pow(2, float64(attempt-1)))
	if d.cfg.MaxRetryDelay > 0 && delay > d.cfg.MaxRetryDelay {
		return d.cfg.MaxRetryDelay
	}
	return delay
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
