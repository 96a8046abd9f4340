// Package catalog fetches products from the remote catalog.
package catalog

import (
	"context"

	"github.com/fjod/kshop/internal/domain"
	"github.com/pkg/errors"
)

var (
	ErrNotFound  = errors.New("product not found")
	ErrTransport = errors.New("catalog transport failure")
)

// Lookup is a read-only view of the catalog. Failures match ErrNotFound or
// ErrTransport with errors.Is.
type Lookup interface {
	Fetch(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}

// IsUnavailable reports whether err means "no product available", whatever
// the cause.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrTransport)
}

// transportError keeps the underlying cause while matching ErrTransport.
type transportError struct {
	err error
}

func newTransportError(err error) error {
	return &transportError{err: err}
}

func (e *transportError) Error() string {
	return ErrTransport.Error() + ": " + e.err.Error()
}

func (e *transportError) Is(target error) bool {
	return target == ErrTransport
}

func (e *transportError) Unwrap() error {
	return e.err
}
