package cart

import "github.com/ecomkit/storefront-cart/internal/model"

// Reduce applies a single action to the cart state and returns the resulting
// state. It is pure and total: the input state is never mutated, no action can
// fail, and the same (state, action) pair always yields an equal result.
func Reduce(state model.CartState, action Action) model.CartState {
	switch a := action.(type) {
	case AddItem:
		return reduceAddItem(state, a.Product)

	case RemoveItem:
		state.Items = removeItem(state.Items, a.ID)
		return state

	case UpdateQuantity:
		if a.Quantity <= 0 {
			state.Items = removeItem(state.Items, a.ID)
			return state
		}
		items := make([]model.CartItem, len(state.Items))
		for i, item := range state.Items {
			if item.ID == a.ID {
				item.Quantity = a.Quantity
			}
			items[i] = item
		}
		state.Items = items
		return state

	case ApplyCoupon:
		coupon := a.Coupon
		state.Coupon = &coupon
		return state

	case RemoveCoupon:
		state.Coupon = nil
		return state

	case Clear:
		cleared := model.EmptyCartState()
		cleared.Loaded = true
		return cleared

	case Load:
		loaded := a.State
		loaded.Loaded = true
		if loaded.Items == nil {
			loaded.Items = []model.CartItem{}
		}
		return loaded
	}

	return state
}

func reduceAddItem(state model.CartState, product model.Product) model.CartState {
	items := make([]model.CartItem, len(state.Items))
	copy(items, state.Items)

	for i, item := range items {
		if item.ID == product.ID {
			// Repeat add: bump the quantity, keep the fields from the first
			// add even if the supplied product differs.
			items[i].Quantity = item.Quantity + 1
			state.Items = items
			return state
		}
	}

	state.Items = append(items, model.CartItem{
		ID:       product.ID,
		Name:     product.Name,
		Slug:     product.Slug,
		Image:    product.Image,
		Price:    product.Price,
		Quantity: 1,
	})
	return state
}

func removeItem(items []model.CartItem, id string) []model.CartItem {
	remaining := make([]model.CartItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			remaining = append(remaining, item)
		}
	}
	return remaining
}
