package cart

import "github.com/ecomkit/storefront-cart/internal/model"

// Subtotal returns the sum of price times quantity across all items.
func Subtotal(items []model.CartItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}

// Discount returns the absolute discount amount for the given subtotal and
// coupon: the coupon percentage of the subtotal, capped by the coupon's
// maximum discount when one is set. A nil coupon or a non-positive percentage
// yields zero.
func Discount(subtotal float64, coupon *model.Coupon) float64 {
	if coupon == nil || coupon.Discount <= 0 {
		return 0
	}

	amount := subtotal * coupon.Discount / 100
	if coupon.MaxDiscount != nil && amount > *coupon.MaxDiscount {
		return *coupon.MaxDiscount
	}
	return amount
}

// ItemCount returns the total quantity across all items.
func ItemCount(items []model.CartItem) int {
	var count int
	for _, item := range items {
		count += item.Quantity
	}
	return count
}
