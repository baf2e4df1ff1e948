package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ecomkit/storefront-cart/internal/model"
	"github.com/ecomkit/storefront-cart/internal/tracking"
)

// AccountRepositoryInterface defines the account lookup checkout depends on.
type AccountRepositoryInterface interface {
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
}

// CheckoutService reconciles cart state, account state and the shipping
// policy into an order summary, and captures the order snapshot at
// confirmation.
type CheckoutService struct {
	sessions    *Sessions
	accounts    AccountRepositoryInterface
	sink        tracking.Sink
	baseURL     string
	shippingFee float64
}

// NewCheckoutService creates a CheckoutService with the given collaborators
// and fixed shipping fee.
func NewCheckoutService(sessions *Sessions, accounts AccountRepositoryInterface, sink tracking.Sink, baseURL string, shippingFee float64) *CheckoutService {
	return &CheckoutService{
		sessions:    sessions,
		accounts:    accounts,
		sink:        sink,
		baseURL:     baseURL,
		shippingFee: shippingFee,
	}
}

// Summary computes the order summary for the session. Returns ErrCartEmpty
// when there is nothing to check out (callers redirect to the cart) and
// ErrAuthRequired when no account resolves (callers render a sign-in prompt).
// The checkout-started notification fires for any loaded, non-empty cart,
// before the authentication gate, matching the page view it stands for.
func (s *CheckoutService) Summary(ctx context.Context, cartID, email string) (*model.CheckoutSummary, error) {
	entry := s.sessions.Acquire(cartID)
	defer entry.Release()

	entry.Cart.Hydrate(ctx)
	projection := entry.Cart.Projection()

	if len(projection.Items) == 0 {
		return nil, ErrCartEmpty
	}

	s.sink.Track(ctx, tracking.EventCheckoutStarted, tracking.NewCartPayload(s.baseURL, projection))
	s.sink.Track(ctx, tracking.EventGoalCompleted, tracking.GoalPayload{
		GoalID:   tracking.GoalCheckoutStart,
		Value:    projection.Subtotal - projection.Discount,
		Currency: projection.Currency,
	})

	account, err := s.resolveAccount(ctx, email)
	if err != nil {
		return nil, err
	}

	shipping, freeShipping := s.shipping(projection.Coupon)

	return &model.CheckoutSummary{
		Items:      projection.Items,
		Currency:   projection.Currency,
		Subtotal:   projection.Subtotal,
		Discount:   projection.Discount,
		Shipping:   shipping,
		FreeShip:   freeShipping,
		FinalTotal: projection.Subtotal - projection.Discount + shipping,
		Contact: model.CheckoutContact{
			Email:   account.Email,
			Phone:   account.Phone,
			Name:    account.DisplayName(),
			Address: account.Address,
			City:    cityLine(account),
			Country: account.Country,
		},
		Payment: model.DefaultMockPayment(),
	}, nil
}

// Confirm captures the order snapshot for a logged-in session and clears the
// cart. A session that already holds an order gets it back unchanged.
func (s *CheckoutService) Confirm(ctx context.Context, cartID, email string) (*model.Order, error) {
	entry := s.sessions.Acquire(cartID)
	defer entry.Release()

	if entry.Order != nil {
		return entry.Order, nil
	}

	entry.Cart.Hydrate(ctx)
	if len(entry.Cart.Items()) == 0 {
		return nil, ErrCartEmpty
	}

	if _, err := s.resolveAccount(ctx, email); err != nil {
		return nil, err
	}

	return s.capture(ctx, entry), nil
}

// Confirmation returns the captured order for the session. When none exists
// yet and the cart still has items, the visit itself captures one, exactly as
// the confirmation view does; with an empty cart it returns ErrNoOrder and
// callers redirect to the cart view.
func (s *CheckoutService) Confirmation(ctx context.Context, cartID string) (*model.Order, error) {
	entry := s.sessions.Acquire(cartID)
	defer entry.Release()

	if entry.Order != nil {
		return entry.Order, nil
	}

	entry.Cart.Hydrate(ctx)
	if len(entry.Cart.Items()) == 0 {
		return nil, ErrNoOrder
	}

	return s.capture(ctx, entry), nil
}

// OrderLines recomputes the shipping and payable total for a captured order.
func (s *CheckoutService) OrderLines(order *model.Order) (shipping float64, freeShipping bool, finalTotal float64) {
	shipping, freeShipping = s.shipping(order.Coupon)
	return shipping, freeShipping, order.Total - order.Discount + shipping
}

// capture freezes the cart into an order, notifies the sink, then clears and
// persists the cart. The snapshot outlives the cleared cart in the session.
// Callers hold the session lock.
func (s *CheckoutService) capture(ctx context.Context, entry *Session) *model.Order {
	projection := entry.Cart.Projection()

	order := &model.Order{
		ID:       newOrderID(),
		Items:    projection.Items,
		Total:    projection.Subtotal,
		Discount: projection.Discount,
		Coupon:   projection.Coupon,
	}
	entry.Order = order

	s.sink.Track(ctx, tracking.EventOrderPlaced, tracking.NewOrderPayload(order.ID, s.baseURL, projection))
	s.sink.Track(ctx, tracking.EventGoalCompleted, tracking.GoalPayload{
		GoalID:   tracking.GoalPurchaseCompletion,
		Value:    projection.Subtotal - projection.Discount,
		Currency: projection.Currency,
	})

	entry.Cart.Clear()
	if entry.Cart.Persist(ctx) {
		s.sink.Track(ctx, tracking.EventCartModified, tracking.NewCartPayload(s.baseURL, entry.Cart.Projection()))
	}

	return order
}

func (s *CheckoutService) resolveAccount(ctx context.Context, email string) (*model.Account, error) {
	if email == "" {
		return nil, ErrAuthRequired
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("resolve account: %w", err)
	}
	if account == nil {
		return nil, ErrAuthRequired
	}
	return account, nil
}

func (s *CheckoutService) shipping(coupon *model.Coupon) (fee float64, free bool) {
	if coupon != nil && coupon.FreeShipping {
		return 0, true
	}
	return s.shippingFee, false
}

func cityLine(account *model.Account) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{account.City, account.State, account.PostalCode} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

// newOrderID generates a unique order identifier: a time-based base-36
// component plus a random suffix. Uniqueness is the only requirement.
func newOrderID() string {
	stamp := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("ORD-%s-%s", stamp, suffix)
}
