package catalog

import (
	"context"

	"github.com/fjod/kshop/internal/domain"
	"github.com/pkg/errors"
)

type ProductCache interface {
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Set(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

var ErrCacheMiss = errors.New("cache miss")
