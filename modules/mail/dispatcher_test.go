package mail

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyMailer fails the first `failures` sends and then succeeds.
type flakyMailer struct {
	failures int32
	calls    atomic.Int32
	inner    *LogMailer
}

func (f *flakyMailer) Send(ctx context.Context, msg Message) error {
	if f.calls.Add(1) <= f.failures {
		return errors.New("smtp: connection refused")
	}
	return f.inner.Send(ctx, msg)
}

// blockingMailer blocks every send until release is closed.
type blockingMailer struct {
	release chan struct{}
	once    sync.Once
}

func (b *blockingMailer) Send(ctx context.Context, _ Message) error {
	select {
	case <-b.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *blockingMailer) open() { b.once.Do(func() { close(b.release) }) }

func fastConfig() PoolConfig {
	return PoolConfig{
		NumWorkers:     1,
		QueueSize:      4,
		MaxRetries:     3,
		BaseRetryDelay: time.Millisecond,
		MaxRetryDelay:  5 * time.Millisecond,
		SendTimeout:    time.Second,
	}
}

func TestDispatcher_DeliversQueuedMessages(t *testing.T) {
	outbox := NewLogMailer()
	d := NewDispatcher(fastConfig(), outbox)
	require.NoError(t, d.Start(context.Background()))

	require.NoError(t, d.Enqueue(Message{ID: "1", To: "a@example.com"}))
	require.NoError(t, d.Enqueue(Message{ID: "2", To: "b@example.com"}))

	require.NoError(t, d.Stop(context.Background()))

	sent := outbox.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, uint64(2), d.Stats().Sent)
}

func TestDispatcher_RetriesWithBackoff(t *testing.T) {
	mailer := &flakyMailer{failures: 2, inner: NewLogMailer()}
	d := NewDispatcher(fastConfig(), mailer)
	require.NoError(t, d.Start(context.Background()))

	require.NoError(t, d.Enqueue(Message{ID: "1", To: "a@example.com"}))
	require.NoError(t, d.Stop(context.Background()))

	assert.Equal(t, int32(3), mailer.calls.Load())
	assert.Len(t, mailer.inner.Sent(), 1)
	assert.Equal(t, uint64(0), d.Stats().Failed)
}

func TestDispatcher_GivesUpAfterMaxRetries(t *testing.T) {
	mailer := &flakyMailer{failures: 10, inner: NewLogMailer()}
	d := NewDispatcher(fastConfig(), mailer)
	require.NoError(t, d.Start(context.Background()))

	require.NoError(t, d.Enqueue(Message{ID: "1", To: "a@example.com"}))
	require.NoError(t, d.Stop(context.Background()))

	assert.Equal(t, int32(3), mailer.calls.Load())
	assert.Empty(t, mailer.inner.Sent())
	assert.Equal(t, uint64(1), d.Stats().Failed)
}

func TestDispatcher_RejectsWhenQueueFull(t *testing.T) {
	mailer := &blockingMailer{release: make(chan struct{})}
	cfg := fastConfig()
	cfg.QueueSize = 1
	d := NewDispatcher(cfg, mailer)
	require.NoError(t, d.Start(context.Background()))
	defer func() {
		mailer.open()
		_ = d.Stop(context.Background())
	}()

	// The first message is picked up by the worker, the second fills the queue.
	require.NoError(t, d.Enqueue(Message{ID: "1"}))
	require.Eventually(t, func() bool { return d.Stats().Queued == 0 }, time.Second, time.Millisecond)
	require.NoError(t, d.Enqueue(Message{ID: "2"}))

	assert.ErrorIs(t, d.Enqueue(Message{ID: "3"}), ErrQueueFull)
	assert.Equal(t, uint64(1), d.Stats().Rejected)
}

func TestDispatcher_NotRunning(t *testing.T) {
	d := NewDispatcher(fastConfig(), NewLogMailer())
	assert.ErrorIs(t, d.Enqueue(Message{ID: "1"}), ErrNotRunning)

	require.NoError(t, d.Start(context.Background()))
	assert.Error(t, d.Start(context.Background()), "double start is rejected")
	require.NoError(t, d.Stop(context.Background()))

	assert.ErrorIs(t, d.Enqueue(Message{ID: "1"}), ErrNotRunning)
	assert.NoError(t, d.Stop(context.Background()), "stopping twice is a no-op")
}

func TestDispatcher_StopTimesOut(t *testing.T) {
	mailer := &blockingMailer{release: make(chan struct{})}
	d := NewDispatcher(fastConfig(), mailer)
	require.NoError(t, d.Start(context.Background()))
	require.NoError(t, d.Enqueue(Message{ID: "1"}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, d.Stop(ctx), context.DeadlineExceeded)
}

func TestDispatcher_RetryDelay(t *testing.T) {
	d := NewDispatcher(PoolConfig{BaseRetryDelay: time.Second, MaxRetryDelay: 5 * time.Second}, NewLogMailer())

	assert.Equal(t, time.Second, d.retryDelay(1))
	assert.Equal(t, 2*time.Second, d.retryDelay(2))
	assert.Equal(t, 4*time.Second, d.retryDelay(3))
	assert.Equal(t, 5*time.Second, d.retryDelay(4))
}
