// Package checkout turns the cart into an order.
package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/fjod/kshop/internal/cart"
	"github.com/fjod/kshop/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const publishTimeout = 10 * time.Second

// Publisher hands a placed order to whatever fulfils it.
type Publisher interface {
	Publish(ctx context.Context, order *domain.Order) error
}

type Service struct {
	publisher Publisher
	logger    *zap.Logger
	now       func() time.Time
	inflight  sync.WaitGroup
}

func NewService(publisher Publisher, logger *zap.Logger) *Service {
	return &Service{
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Available reports whether the checkout form may be offered.
func (s *Service) Available(c *cart.Cart) bool {
	return c.State() == cart.NonEmpty
}

// Submit places an order for the cart contents and clears the cart. The
// cart is left untouched when it is empty or the form is invalid. Publishing
// happens in the background and its failures are only logged.
func (s *Service) Submit(ctx context.Context, c *cart.Cart, info domain.UserInfo) (*domain.Order, error) {
	if !s.Available(c) {
		return nil, ErrEmptyCart
	}
	if err := Validate(info); err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:         uuid.New(),
		Customer:   normalize(info),
		Lines:      c.Snapshot(),
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
		Currency:   domain.Currency,
		PlacedAt:   s.now().UTC(),
	}
	c.Clear()

	s.inflight.Add(1)
	go func(order domain.Order) {
		defer s.inflight.Done()
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()
		if err := s.publisher.Publish(pubCtx, &order); err != nil {
			s.logger.Error("failed to publish order",
				zap.String("order_id", order.ID.String()),
				zap.Error(err))
		}
	}(*order)

	return order, nil
}

// Wait blocks until every background publish has finished.
func (s *Service) Wait() {
	s.inflight.Wait()
}
