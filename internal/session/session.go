// Package session holds the per-process cart and detail view shared by all
// HTTP handlers.
package session

import (
	"sync"

	"github.com/fjod/kshop/internal/cart"
	"github.com/fjod/kshop/internal/catalog"
	"github.com/fjod/kshop/internal/view"
)

type Session struct {
	mu     sync.RWMutex
	cart   *cart.Cart
	detail *view.Detail
}

func New(lookup catalog.Lookup) *Session {
	return &Session{
		cart:   cart.New(),
		detail: view.NewDetail(lookup),
	}
}

// Read runs fn with shared access to the cart. fn must not mutate it.
func (s *Session) Read(fn func(c *cart.Cart)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.cart)
}

// Mutate runs fn with exclusive access to the cart.
func (s *Session) Mutate(fn func(c *cart.Cart)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.cart)
}

func (s *Session) Detail() *view.Detail {
	return s.detail
}
