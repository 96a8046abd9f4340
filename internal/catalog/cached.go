package catalog

import (
	"context"
	"strconv"
	"time"

	"github.com/fjod/kshop/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const cacheWriteTimeout = time.Second

// Cached reads products through a ProductCache and collapses concurrent
// lookups of the same id into one upstream request.
type Cached struct {
	next   Lookup
	cache  ProductCache
	sfg    singleflight.Group
	logger *zap.Logger
}

func NewCached(next Lookup, cache ProductCache, logger *zap.Logger) *Cached {
	return &Cached{
		next:   next,
		cache:  cache,
		logger: logger,
	}
}

func (c *Cached) Fetch(ctx context.Context, id int64) (*domain.Product, error) {
	// The shared call must outlive any single caller: one abandoned view
	// would otherwise fail every other waiter on the same id.
	shared := context.WithoutCancel(ctx)
	ch := c.sfg.DoChan(strconv.FormatInt(id, 10), func() (interface{}, error) {
		return c.load(shared, id)
	})

	select {
	case <-ctx.Done():
		return nil, newTransportError(ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		p := *res.Val.(*domain.Product)
		return &p, nil
	}
}

func (c *Cached) load(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := c.cache.Get(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		c.logger.Warn("product cache get failed", zap.Int64("product_id", id), zap.Error(err))
	}

	p, err = c.next.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	go func(p domain.Product) {
		setCtx, cancel := context.WithTimeout(context.Background(), cacheWriteTimeout)
		defer cancel()
		if err := c.cache.Set(setCtx, &p); err != nil {
			c.logger.Warn("product cache set failed", zap.Int64("product_id", p.ID), zap.Error(err))
		}
	}(*p)

	return p, nil
}

// List is not cached; the listing view always shows the live catalog.
func (c *Cached) List(ctx context.Context) ([]domain.Product, error) {
	return c.next.List(ctx)
}
