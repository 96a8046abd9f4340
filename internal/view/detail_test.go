package view

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fjod/kshop/internal/catalog"
	"github.com/fjod/kshop/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedLookup blocks every Fetch of an id until that id's gate is opened.
type gatedLookup struct {
	mu    sync.Mutex
	gates map[int64]chan struct{}
}

func newGatedLookup() *gatedLookup {
	return &gatedLookup{gates: make(map[int64]chan struct{})}
}

func (g *gatedLookup) gate(id int64) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[id]
	if !ok {
		ch = make(chan struct{})
		g.gates[id] = ch
	}
	return ch
}

func (g *gatedLookup) open(id int64) {
	close(g.gate(id))
}

func (g *gatedLookup) Fetch(ctx context.Context, id int64) (*domain.Product, error) {
	select {
	case <-g.gate(id):
	case <-ctx.Done():
		// a cancelled lookup may still resolve late; let the test decide
		<-g.gate(id)
	}
	if id >= 100 {
		return nil, catalog.ErrNotFound
	}
	return &domain.Product{ID: id, Title: "product", Price: decimal.NewFromInt(id)}, nil
}

func (g *gatedLookup) List(ctx context.Context) ([]domain.Product, error) {
	return nil, nil
}

func waitResult(t *testing.T, ticket *Ticket) (*domain.Product, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return ticket.Wait(ctx)
}

func TestDetail_StartsIdle(t *testing.T) {
	d := NewDetail(newGatedLookup())

	assert.Equal(t, Idle, d.Current().Status)
}

func TestDetail_EnterResolves(t *testing.T) {
	lookup := newGatedLookup()
	d := NewDetail(lookup)

	ticket := d.Enter(context.Background(), 3)
	assert.Equal(t, Loading, d.Current().Status)
	assert.Equal(t, int64(3), d.Current().ProductID)

	lookup.open(3)
	p, err := waitResult(t, ticket)

	require.NoError(t, err)
	assert.Equal(t, int64(3), p.ID)
	cur := d.Current()
	assert.Equal(t, Loaded, cur.Status)
	assert.Equal(t, int64(3), cur.Product.ID)
}

func TestDetail_NotFound(t *testing.T) {
	lookup := newGatedLookup()
	d := NewDetail(lookup)

	ticket := d.Enter(context.Background(), 100)
	lookup.open(100)
	_, err := waitResult(t, ticket)

	assert.ErrorIs(t, err, catalog.ErrNotFound)
	cur := d.Current()
	assert.Equal(t, Failed, cur.Status)
	assert.ErrorIs(t, cur.Err, catalog.ErrNotFound)
}

// Scenario D: the lookup for A resolves after the view moved to B.
func TestDetail_SupersededLookupIsDiscarded(t *testing.T) {
	lookup := newGatedLookup()
	d := NewDetail(lookup)

	first := d.Enter(context.Background(), 1)
	second := d.Enter(context.Background(), 2)

	lookup.open(2)
	p, err := waitResult(t, second)
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.ID)

	lookup.open(1)
	_, err = waitResult(t, first)
	assert.ErrorIs(t, err, ErrStale)

	cur := d.Current()
	assert.Equal(t, Loaded, cur.Status)
	assert.Equal(t, int64(2), cur.Product.ID)
}

func TestDetail_SupersededResolvingFirstDoesNotPublish(t *testing.T) {
	lookup := newGatedLookup()
	d := NewDetail(lookup)

	first := d.Enter(context.Background(), 1)
	second := d.Enter(context.Background(), 2)

	lookup.open(1)
	_, err := waitResult(t, first)
	assert.ErrorIs(t, err, ErrStale)
	assert.Equal(t, Loading, d.Current().Status)
	assert.Equal(t, int64(2), d.Current().ProductID)

	lookup.open(2)
	_, err = waitResult(t, second)
	require.NoError(t, err)
}

func TestDetail_ExitDiscardsLookup(t *testing.T) {
	lookup := newGatedLookup()
	d := NewDetail(lookup)

	ticket := d.Enter(context.Background(), 5)
	d.Exit()
	lookup.open(5)

	_, err := waitResult(t, ticket)
	assert.ErrorIs(t, err, ErrStale)
	assert.Equal(t, Idle, d.Current().Status)
}

func TestDetail_CallerCancellationDoesNotCancelLookup(t *testing.T) {
	lookup := newGatedLookup()
	d := NewDetail(lookup)

	reqCtx, cancel := context.WithCancel(context.Background())
	ticket := d.Enter(reqCtx, 4)
	cancel()

	_, err := ticket.Wait(reqCtx)
	assert.ErrorIs(t, err, context.Canceled)

	lookup.open(4)
	p, err := waitResult(t, ticket)
	require.NoError(t, err)
	assert.Equal(t, int64(4), p.ID)
	assert.Equal(t, Loaded, d.Current().Status)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "IDLE", Idle.String())
	assert.Equal(t, "LOADING", Loading.String())
	assert.Equal(t, "LOADED", Loaded.String())
	assert.Equal(t, "FAILED", Failed.String())
	assert.Equal(t, "UNKNOWN", Status(7).String())
}
