package tracking

import (
	"fmt"

	"github.com/ecomkit/storefront-cart/internal/model"
)

// Event names emitted by the cart and checkout flows.
const (
	EventCartViewed      = "cartViewed"
	EventCartModified    = "cartModified"
	EventCheckoutStarted = "checkoutStarted"
	EventOrderPlaced     = "orderPlaced"
	EventGoalCompleted   = "goalCompleted"
)

// Goal identifiers for goalCompleted events.
const (
	GoalCheckoutStart      = "checkout-start"
	GoalPurchaseCompletion = "purchase-completion"
)

// ProductPayload is the normalized product inside a tracked cart item.
type ProductPayload struct {
	ProductID    string  `json:"productId"`
	Name         string  `json:"name"`
	DisplayPrice float64 `json:"displayPrice"`
	URL          string  `json:"url"`
	ImageURL     string  `json:"imageUrl,omitempty"`
}

// ItemPayload is one positional cart line in a tracked payload.
type ItemPayload struct {
	Index    int            `json:"index"`
	Product  ProductPayload `json:"product"`
	Quantity int            `json:"quantity"`
	Total    float64        `json:"total"`
}

// CartPayload is the normalized cart carried by cartViewed, cartModified and
// checkoutStarted events. Total is the subtotal net of discount; discount and
// coupon appear only when present.
type CartPayload struct {
	Currency string        `json:"currency"`
	Items    []ItemPayload `json:"items"`
	Total    float64       `json:"total"`
	Discount float64       `json:"discount,omitempty"`
	Coupon   string        `json:"coupon,omitempty"`
}

// OrderPayload is the normalized order carried by orderPlaced events.
type OrderPayload struct {
	OrderID string `json:"orderId"`
	CartPayload
}

// GoalPayload reports a completed conversion goal with its monetary value.
type GoalPayload struct {
	GoalID   string  `json:"goalId"`
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

// NewCartPayload normalizes a projected cart for the event sink. Product URLs
// are absolute, rooted at the storefront base URL.
func NewCartPayload(baseURL string, cart model.ProjectedCart) CartPayload {
	items := make([]ItemPayload, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = ItemPayload{
			Index: i,
			Product: ProductPayload{
				ProductID:    item.ID,
				Name:         item.Name,
				DisplayPrice: item.Price,
				URL:          fmt.Sprintf("%s/product/%s", baseURL, item.Slug),
				ImageURL:     item.Image,
			},
			Quantity: item.Quantity,
			Total:    item.Price * float64(item.Quantity),
		}
	}

	payload := CartPayload{
		Currency: cart.Currency,
		Items:    items,
		Total:    cart.Subtotal - cart.Discount,
	}
	if cart.Discount > 0 {
		payload.Discount = cart.Discount
	}
	if cart.Coupon != nil {
		payload.Coupon = cart.Coupon.Code
	}
	return payload
}

// NewOrderPayload normalizes an order confirmation for the event sink.
func NewOrderPayload(orderID string, baseURL string, cart model.ProjectedCart) OrderPayload {
	return OrderPayload{
		OrderID:     orderID,
		CartPayload: NewCartPayload(baseURL, cart),
	}
}
