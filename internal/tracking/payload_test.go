package tracking

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomkit/storefront-cart/internal/model"
)

func projectedCart() model.ProjectedCart {
	return model.ProjectedCart{
		Loaded:   true,
		Currency: "EUR",
		Items: []model.CartItem{
			{ID: "p1", Name: "Desk Lamp", Slug: "desk-lamp", Image: "/img/p1.jpg", Price: 40, Quantity: 2},
			{ID: "p2", Name: "Notebook", Slug: "notebook", Price: 20, Quantity: 1},
		},
		Subtotal:  100,
		ItemCount: 3,
	}
}

func TestNewCartPayload_NormalizesItems(t *testing.T) {
	payload := NewCartPayload("http://localhost:3000", projectedCart())

	assert.Equal(t, "EUR", payload.Currency)
	require.Len(t, payload.Items, 2)

	first := payload.Items[0]
	assert.Equal(t, 0, first.Index)
	assert.Equal(t, "p1", first.Product.ProductID)
	assert.Equal(t, "Desk Lamp", first.Product.Name)
	assert.Equal(t, 40.0, first.Product.DisplayPrice)
	assert.Equal(t, "http://localhost:3000/product/desk-lamp", first.Product.URL)
	assert.Equal(t, "/img/p1.jpg", first.Product.ImageURL)
	assert.Equal(t, 2, first.Quantity)
	assert.Equal(t, 80.0, first.Total)

	second := payload.Items[1]
	assert.Equal(t, 1, second.Index)
	assert.Equal(t, 20.0, second.Total)
}

func TestNewCartPayload_TotalNetOfDiscount(t *testing.T) {
	cart := projectedCart()
	cart.Coupon = &model.Coupon{Code: "SAVE20", Discount: 20}
	cart.Discount = 20

	payload := NewCartPayload("http://localhost:3000", cart)

	assert.Equal(t, 80.0, payload.Total)
	assert.Equal(t, 20.0, payload.Discount)
	assert.Equal(t, "SAVE20", payload.Coupon)
}

func TestNewCartPayload_OmitsAbsentDiscountAndCoupon(t *testing.T) {
	payload := NewCartPayload("http://localhost:3000", projectedCart())

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	assert.NotContains(t, string(data), `"discount"`)
	assert.NotContains(t, string(data), `"coupon"`)
}

func TestNewCartPayload_EmptyCart(t *testing.T) {
	payload := NewCartPayload("http://localhost:3000", model.ProjectedCart{Currency: "EUR", Items: []model.CartItem{}})

	assert.NotNil(t, payload.Items)
	assert.Empty(t, payload.Items)
	assert.Zero(t, payload.Total)
}

func TestNewOrderPayload(t *testing.T) {
	payload := NewOrderPayload("ORD-TEST-1234", "http://localhost:3000", projectedCart())

	assert.Equal(t, "ORD-TEST-1234", payload.OrderID)
	assert.Equal(t, 100.0, payload.Total)
	assert.Len(t, payload.Items, 2)
}
