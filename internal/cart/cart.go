package cart

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/ecomkit/storefront-cart/internal/model"
)

// Store reads and writes the durable snapshot of a single cart. The loaded
// flag is never part of the snapshot. Implementations must degrade a missing
// or corrupt snapshot to the empty state rather than failing the read.
type Store interface {
	Load(ctx context.Context) (model.CartState, error)
	Write(ctx context.Context, state model.CartState) error
}

// Cart wraps the current state and the reducer behind intention-revealing
// methods, and owns the diff-then-write persistence trigger. It is not safe
// for concurrent use; callers serialize access per session.
type Cart struct {
	state model.CartState
	store Store
}

// New returns a cart in the empty, not-yet-hydrated state.
func New(store Store) *Cart {
	return &Cart{state: model.EmptyCartState(), store: store}
}

// Hydrate loads the stored snapshot into the cart. It runs at most once; a
// cart that is already loaded keeps its in-memory state as the source of
// truth. A failing read degrades to the empty state.
func (c *Cart) Hydrate(ctx context.Context) {
	if c.state.Loaded {
		return
	}

	stored, err := c.store.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("cart snapshot read failed, starting empty")
		stored = model.EmptyCartState()
	}

	c.dispatch(Load{State: stored})
}

func (c *Cart) dispatch(action Action) {
	c.state = Reduce(c.state, action)
}

// AddItem adds the product to the cart, incrementing the quantity on a
// repeat add.
func (c *Cart) AddItem(product model.Product) {
	c.dispatch(AddItem{Product: product})
}

// RemoveItem removes the line with the given ID; absent IDs are a no-op.
func (c *Cart) RemoveItem(id string) {
	c.dispatch(RemoveItem{ID: id})
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
func (c *Cart) UpdateQuantity(id string, quantity int) {
	c.dispatch(UpdateQuantity{ID: id, Quantity: quantity})
}

// ApplyCoupon stores an already-validated coupon, replacing any previous one.
func (c *Cart) ApplyCoupon(coupon model.Coupon) {
	c.dispatch(ApplyCoupon{Coupon: coupon})
}

// RemoveCoupon drops the applied coupon.
func (c *Cart) RemoveCoupon() {
	c.dispatch(RemoveCoupon{})
}

// Clear empties the cart, keeping it marked as loaded.
func (c *Cart) Clear() {
	c.dispatch(Clear{})
}

// Loaded reports whether the cart has been hydrated from the store.
func (c *Cart) Loaded() bool { return c.state.Loaded }

// Currency returns the cart currency.
func (c *Cart) Currency() string { return c.state.Currency }

// Items returns the cart lines in insertion order.
func (c *Cart) Items() []model.CartItem { return c.state.Items }

// Coupon returns the applied coupon, or nil.
func (c *Cart) Coupon() *model.Coupon { return c.state.Coupon }

// Subtotal returns the sum of price times quantity across all lines.
func (c *Cart) Subtotal() float64 { return Subtotal(c.state.Items) }

// Discount returns the absolute discount amount for the applied coupon.
func (c *Cart) Discount() float64 { return Discount(c.Subtotal(), c.state.Coupon) }

// ItemCount returns the total quantity across all lines.
func (c *Cart) ItemCount() int { return ItemCount(c.state.Items) }

// State returns the current raw state.
func (c *Cart) State() model.CartState { return c.state }

// Projection returns the cart read model with derived totals.
func (c *Cart) Projection() model.ProjectedCart {
	return model.ProjectedCart{
		Loaded:    c.Loaded(),
		Currency:  c.Currency(),
		Items:     c.Items(),
		Coupon:    c.Coupon(),
		Subtotal:  c.Subtotal(),
		Discount:  c.Discount(),
		ItemCount: c.ItemCount(),
	}
}

// Persist writes the cart to the store if it differs from the stored
// snapshot, and reports whether a change was found. The diff covers currency,
// coupon code, item count and per-item ID and quantity in positional order,
// which keeps redundant writes (and downstream change notifications) from
// firing on reads. Write failures are logged and swallowed: persistence is
// best-effort, never fatal to the flow.
func (c *Cart) Persist(ctx context.Context) bool {
	previous, err := c.store.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("cart snapshot re-read failed, assuming empty")
		previous = model.EmptyCartState()
	}

	if !changed(previous, c.state) {
		return false
	}

	if err := c.store.Write(ctx, c.state); err != nil {
		log.Warn().Err(err).Msg("cart snapshot write failed")
	}

	return true
}

func changed(previous, current model.CartState) bool {
	if previous.Currency != current.Currency {
		return true
	}
	if couponCode(previous.Coupon) != couponCode(current.Coupon) {
		return true
	}
	if len(previous.Items) != len(current.Items) {
		return true
	}
	for i, item := range previous.Items {
		if item.ID != current.Items[i].ID || item.Quantity != current.Items[i].Quantity {
			return true
		}
	}
	return false
}

func couponCode(coupon *model.Coupon) string {
	if coupon == nil {
		return ""
	}
	return coupon.Code
}
