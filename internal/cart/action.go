package cart

import "github.com/ecomkit/storefront-cart/internal/model"

// Action is one transition of the cart state machine. The set is closed: only
// the types in this file implement it, so Reduce can match exhaustively.
type Action interface {
	isAction()
}

// AddItem appends the product with quantity 1, or increments the quantity of
// an existing line with the same ID. On a repeat add the stored catalog fields
// are kept and the newly supplied ones are ignored.
type AddItem struct {
	Product model.Product
}

// RemoveItem deletes the line with the given ID. Absent IDs are a no-op.
type RemoveItem struct {
	ID string
}

// UpdateQuantity sets the quantity of the line with the given ID. A quantity
// of zero or less removes the line instead; there is no upper bound.
type UpdateQuantity struct {
	ID       string
	Quantity int
}

// ApplyCoupon replaces the applied coupon wholesale. Validation happens
// upstream; the state machine stores whatever it is given.
type ApplyCoupon struct {
	Coupon model.Coupon
}

// RemoveCoupon drops the applied coupon.
type RemoveCoupon struct{}

// Clear resets the cart to the empty state, keeping it marked as loaded.
type Clear struct{}

// Load replaces the entire state with a hydrated snapshot and forces the
// loaded flag. Dispatched exactly once, right after the store read.
type Load struct {
	State model.CartState
}

func (AddItem) isAction()        {}
func (RemoveItem) isAction()     {}
func (UpdateQuantity) isAction() {}
func (ApplyCoupon) isAction()    {}
func (RemoveCoupon) isAction()   {}
func (Clear) isAction()          {}
func (Load) isAction()           {}
