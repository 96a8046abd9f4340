package catalog

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fjod/kshop/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubLookup struct {
	calls   int32
	release chan struct{}
	product map[int64]domain.Product
}

func (s *stubLookup) Fetch(ctx context.Context, id int64) (*domain.Product, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.release != nil {
		<-s.release
	}
	p, ok := s.product[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *stubLookup) List(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(s.product))
	for _, p := range s.product {
		out = append(out, p)
	}
	return out, nil
}

func newStub() *stubLookup {
	return &stubLookup{
		product: map[int64]domain.Product{
			1: {ID: 1, Title: "Backpack", Price: decimal.RequireFromString("109.95")},
		},
	}
}

func TestCached_FillsCacheOnMiss(t *testing.T) {
	_, cache := newTestRedis(t)
	stub := newStub()
	cached := NewCached(stub, cache, zap.NewNop())
	ctx := context.Background()

	p, err := cached.Fetch(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Backpack", p.Title)

	require.Eventually(t, func() bool {
		_, err := cache.Get(ctx, 1)
		return err == nil
	}, time.Second, 10*time.Millisecond)

	_, err = cached.Fetch(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&stub.calls))
}

func TestCached_NotFoundIsNotCached(t *testing.T) {
	mr, cache := newTestRedis(t)
	stub := newStub()
	cached := NewCached(stub, cache, zap.NewNop())

	_, err := cached.Fetch(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = cached.Fetch(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, int32(2), atomic.LoadInt32(&stub.calls))
	assert.False(t, mr.Exists("product:42"))
}

func TestCached_CollapsesConcurrentLookups(t *testing.T) {
	_, cache := newTestRedis(t)
	stub := newStub()
	stub.release = make(chan struct{})
	cached := NewCached(stub, cache, zap.NewNop())

	var wg sync.WaitGroup
	results := make([]*domain.Product, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := cached.Fetch(context.Background(), 1)
			if err == nil {
				results[i] = p
			}
		}(i)
	}

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&stub.calls) == 1
	}, time.Second, 5*time.Millisecond)
	// give the other callers time to join the in-flight lookup
	time.Sleep(50 * time.Millisecond)
	close(stub.release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&stub.calls))
	for _, p := range results {
		require.NotNil(t, p)
		assert.Equal(t, "Backpack", p.Title)
	}
}

func TestCached_CancelledCallerDoesNotFailOthers(t *testing.T) {
	_, cache := newTestRedis(t)
	stub := newStub()
	stub.release = make(chan struct{})
	cached := NewCached(stub, cache, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := cached.Fetch(ctx, 1)
		firstErr <- err
	}()
	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&stub.calls) == 1
	}, time.Second, 5*time.Millisecond)

	second := make(chan *domain.Product, 1)
	go func() {
		p, _ := cached.Fetch(context.Background(), 1)
		second <- p
	}()

	cancel()
	err := <-firstErr
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, ErrTransport)

	close(stub.release)
	p := <-second
	require.NotNil(t, p)
	assert.Equal(t, int64(1), p.ID)
}

func TestCached_ListPassesThrough(t *testing.T) {
	_, cache := newTestRedis(t)
	cached := NewCached(newStub(), cache, zap.NewNop())

	products, err := cached.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, products, 1)
}
