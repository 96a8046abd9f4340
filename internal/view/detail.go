// Package view tracks the product detail view of a session.
package view

import (
	"context"
	"sync"

	"github.com/fjod/kshop/internal/catalog"
	"github.com/fjod/kshop/internal/domain"
	"github.com/pkg/errors"
)

// ErrStale is returned by a ticket whose lookup was superseded before it
// resolved.
var ErrStale = errors.New("lookup superseded")

type Status int

const (
	Idle Status = iota
	Loading
	Loaded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Loading:
		return "LOADING"
	case Loaded:
		return "LOADED"
	case Failed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// Snapshot is what the detail view currently shows.
type Snapshot struct {
	Status    Status
	ProductID int64
	Product   *domain.Product
	Err       error
}

// Detail holds at most one outstanding lookup. Entering the view again, or
// leaving it, cancels the outstanding lookup; only the most recently issued
// lookup may update the view.
type Detail struct {
	lookup catalog.Lookup

	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	current Snapshot
}

func NewDetail(lookup catalog.Lookup) *Detail {
	return &Detail{lookup: lookup}
}

// Ticket is the handle of one issued lookup.
type Ticket struct {
	seq     uint64
	id      int64
	done    chan struct{}
	product *domain.Product
	err     error
}

// Enter opens the view for product id. The lookup is detached from ctx's
// cancellation; it ends when it resolves or when the view moves on.
func (d *Detail) Enter(ctx context.Context, id int64) *Ticket {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.invalidate()
	lookupCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	d.cancel = cancel
	d.current = Snapshot{Status: Loading, ProductID: id}

	t := &Ticket{seq: d.seq, id: id, done: make(chan struct{})}
	go d.resolve(lookupCtx, t)
	return t
}

// Exit leaves the view. An outstanding lookup is cancelled and its result
// dropped.
func (d *Detail) Exit() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.invalidate()
	d.current = Snapshot{Status: Idle}
}

func (d *Detail) Current() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

// invalidate must be called with mu held.
func (d *Detail) invalidate() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.seq++
}

func (d *Detail) resolve(ctx context.Context, t *Ticket) {
	defer close(t.done)

	p, err := d.lookup.Fetch(ctx, t.id)

	d.mu.Lock()
	defer d.mu.Unlock()

	if t.seq != d.seq {
		t.err = ErrStale
		return
	}

	d.cancel = nil
	t.product, t.err = p, err
	if err != nil {
		d.current = Snapshot{Status: Failed, ProductID: t.id, Err: err}
		return
	}
	d.current = Snapshot{Status: Loaded, ProductID: t.id, Product: p}
}

func (t *Ticket) ProductID() int64 {
	return t.id
}

// Wait blocks until the lookup resolves or ctx is done.
func (t *Ticket) Wait(ctx context.Context) (*domain.Product, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-t.done:
		return t.product, t.err
	}
}
