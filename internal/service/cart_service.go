package service

import (
	"context"
	"fmt"

	"github.com/ecomkit/storefront-cart/internal/cart"
	"github.com/ecomkit/storefront-cart/internal/model"
	"github.com/ecomkit/storefront-cart/internal/tracking"
)

// CouponValidatorInterface defines the coupon validation the cart service
// delegates to before storing a coupon.
type CouponValidatorInterface interface {
	Validate(ctx context.Context, code string) (*model.CouponValidation, error)
}

// CartService exposes the cart operations behind the HTTP surface. Every
// mutation runs through the state machine, persists if the state changed, and
// notifies the event sink on persisted changes.
type CartService struct {
	sessions  *Sessions
	validator CouponValidatorInterface
	sink      tracking.Sink
	baseURL   string
}

// NewCartService creates a CartService.
func NewCartService(sessions *Sessions, validator CouponValidatorInterface, sink tracking.Sink, baseURL string) *CartService {
	return &CartService{
		sessions:  sessions,
		validator: validator,
		sink:      sink,
		baseURL:   baseURL,
	}
}

// Get returns the projected cart and notifies the sink of the cart view.
func (s *CartService) Get(ctx context.Context, cartID string) model.ProjectedCart {
	entry := s.sessions.Acquire(cartID)
	defer entry.Release()

	entry.Cart.Hydrate(ctx)
	projection := entry.Cart.Projection()

	s.sink.Track(ctx, tracking.EventCartViewed, tracking.NewCartPayload(s.baseURL, projection))

	return projection
}

// AddItem adds a product to the cart.
func (s *CartService) AddItem(ctx context.Context, cartID string, product model.Product) model.ProjectedCart {
	return s.mutate(ctx, cartID, func(c *cart.Cart) { c.AddItem(product) })
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, cartID, itemID string, quantity int) model.ProjectedCart {
	return s.mutate(ctx, cartID, func(c *cart.Cart) { c.UpdateQuantity(itemID, quantity) })
}

// RemoveItem removes a line from the cart.
func (s *CartService) RemoveItem(ctx context.Context, cartID, itemID string) model.ProjectedCart {
	return s.mutate(ctx, cartID, func(c *cart.Cart) { c.RemoveItem(itemID) })
}

// RemoveCoupon drops the applied coupon.
func (s *CartService) RemoveCoupon(ctx context.Context, cartID string) model.ProjectedCart {
	return s.mutate(ctx, cartID, func(c *cart.Cart) { c.RemoveCoupon() })
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, cartID string) model.ProjectedCart {
	return s.mutate(ctx, cartID, func(c *cart.Cart) { c.Clear() })
}

// ApplyCoupon validates a code and, when valid, stores the resulting coupon
// in the cart. Invalid outcomes are returned as data with their reason; the
// cart is left untouched. While one validation is in flight for a cart,
// further ones are rejected with ErrCouponInFlight. The session lock is not
// held across the validation call.
func (s *CartService) ApplyCoupon(ctx context.Context, cartID, code string) (*model.CouponValidation, model.ProjectedCart, error) {
	entry := s.sessions.Acquire(cartID)
	if entry.couponInFlight {
		entry.Release()
		return nil, model.ProjectedCart{}, ErrCouponInFlight
	}
	entry.couponInFlight = true
	entry.Cart.Hydrate(ctx)
	entry.Release()

	result, err := s.validator.Validate(ctx, code)

	entry = s.sessions.Acquire(cartID)
	defer entry.Release()
	entry.couponInFlight = false

	if err != nil {
		return nil, entry.Cart.Projection(), fmt.Errorf("apply coupon: %w", err)
	}

	if !result.Valid {
		return result, entry.Cart.Projection(), nil
	}

	entry.Cart.ApplyCoupon(*result.Coupon())
	return result, s.persist(ctx, entry), nil
}

func (s *CartService) mutate(ctx context.Context, cartID string, fn func(*cart.Cart)) model.ProjectedCart {
	entry := s.sessions.Acquire(cartID)
	defer entry.Release()

	entry.Cart.Hydrate(ctx)
	fn(entry.Cart)

	return s.persist(ctx, entry)
}

// persist writes the cart if it changed and emits cartModified when it did.
// Callers hold the session lock.
func (s *CartService) persist(ctx context.Context, entry *Session) model.ProjectedCart {
	projection := entry.Cart.Projection()
	if entry.Cart.Persist(ctx) {
		s.sink.Track(ctx, tracking.EventCartModified, tracking.NewCartPayload(s.baseURL, projection))
	}
	return projection
}
