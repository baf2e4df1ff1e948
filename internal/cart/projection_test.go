package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecomkit/storefront-cart/internal/model"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestSubtotal(t *testing.T) {
	items := []model.CartItem{
		{ID: "p1", Price: 20, Quantity: 2},
		{ID: "p2", Price: 4.5, Quantity: 3},
	}

	assert.Equal(t, 53.5, Subtotal(items))
}

func TestSubtotal_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Subtotal(nil))
}

func TestItemCount(t *testing.T) {
	items := []model.CartItem{
		{ID: "p1", Quantity: 2},
		{ID: "p2", Quantity: 5},
	}

	assert.Equal(t, 7, ItemCount(items))
}

func TestDiscount_NoCoupon(t *testing.T) {
	assert.Equal(t, 0.0, Discount(100, nil))
}

func TestDiscount_NonPositivePercentage(t *testing.T) {
	assert.Equal(t, 0.0, Discount(100, &model.Coupon{Code: "FREESHIP", Discount: 0, FreeShipping: true}))
	assert.Equal(t, 0.0, Discount(100, &model.Coupon{Code: "ODD", Discount: -5}))
}

func TestDiscount_Percentage(t *testing.T) {
	assert.Equal(t, 20.0, Discount(100, &model.Coupon{Code: "SAVE20", Discount: 20}))
}

func TestDiscount_CappedByMaxDiscount(t *testing.T) {
	coupon := &model.Coupon{Code: "SAVE20", Discount: 20, MaxDiscount: floatPtr(15)}

	assert.Equal(t, 15.0, Discount(100, coupon), "20%% of 100 is capped at 15")
}

func TestDiscount_CapAboveAmountIsInert(t *testing.T) {
	coupon := &model.Coupon{Code: "SAVE10", Discount: 10, MaxDiscount: floatPtr(50)}

	assert.Equal(t, 10.0, Discount(100, coupon))
}

func TestDiscount_NeverExceedsSubtotal(t *testing.T) {
	for _, subtotal := range []float64{0, 1, 9.99, 100, 12345.67} {
		for _, pct := range []float64{0, 1, 25, 50, 99, 100} {
			discount := Discount(subtotal, &model.Coupon{Code: "X", Discount: pct})
			assert.LessOrEqual(t, discount, subtotal,
				"discount for %.2f%% of %.2f must not exceed the subtotal", pct, subtotal)
		}
	}
}
