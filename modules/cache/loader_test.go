package cache

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store for exercising Loader without Redis.
type memStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	failGet bool
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (s *memStore) Get(_ context.Context, key string, dest any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet {
		return false, errors.New("connection refused")
	}
	b, ok := s.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (s *memStore) Set(_ context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = b
	return nil
}

func (s *memStore) DeletePattern(_ context.Context, pattern string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(s.data, k)
		}
	}
	return nil
}

func TestFetch_CachesAfterFirstLoad(t *testing.T) {
	l := NewLoader(newMemStore())
	ctx := context.Background()

	var loads int
	load := func(context.Context) ([]string, error) {
		loads++
		return []string{"Bebida", "Pastel"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := Fetch(ctx, l, "product-type:list", load)
		require.NoError(t, err)
		assert.Equal(t, []string{"Bebida", "Pastel"}, got)
	}
	assert.Equal(t, 1, loads)

	l.Invalidate(ctx, "product-type:*")

	_, err := Fetch(ctx, l, "product-type:list", load)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}

func TestFetch_LoadErrorIsNotCached(t *testing.T) {
	l := NewLoader(newMemStore())
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := Fetch(ctx, l, "k", func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)

	got, err := Fetch(ctx, l, "k", func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, got)
}

func TestFetch_StoreFailureFallsBackToLoad(t *testing.T) {
	s := newMemStore()
	s.failGet = true
	l := NewLoader(s)

	got, err := Fetch(context.Background(), l, "k", func(context.Context) (string, error) { return "db", nil })
	require.NoError(t, err)
	assert.Equal(t, "db", got)
}

func TestFetch_CollapsesConcurrentMisses(t *testing.T) {
	l := NewLoader(Noop{})
	release := make(chan struct{})
	var loads atomic.Int32

	load := func(context.Context) (int, error) {
		loads.Add(1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Fetch(context.Background(), l, "same", load)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), loads.Load())
	for _, v := range results {
		assert.Equal(t, 42, v)
	}
}
