package model

// DefaultCurrency is the storefront's single display currency.
const DefaultCurrency = "EUR"

// Product carries the catalog fields of a cart line, without a quantity.
// It is the payload of an add-to-cart request.
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Slug  string  `json:"slug"`
	Image string  `json:"image"`
	Price float64 `json:"price"`
}

// CartItem is a single product line in the cart.
// Quantity is always >= 1 while the item is present.
type CartItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Coupon is a previously-validated discount applied to the cart.
// Discount is a percentage of the subtotal; MaxDiscount, when set, caps the
// absolute discount amount.
type Coupon struct {
	Code         string   `json:"code"`
	Title        string   `json:"title"`
	Discount     float64  `json:"discount"`
	MaxDiscount  *float64 `json:"maxDiscount,omitempty"`
	FreeShipping bool     `json:"freeShipping"`
}

// CartState is the complete persisted-and-reduced cart state.
// Items are unique by ID in insertion order; at most one coupon is applied.
// Loaded reports whether the state has been hydrated from the snapshot store;
// it is never serialized.
type CartState struct {
	Loaded   bool       `json:"-"`
	Currency string     `json:"currency"`
	Items    []CartItem `json:"items"`
	Coupon   *Coupon    `json:"coupon"`
}

// EmptyCartState returns the initial, not-yet-hydrated cart state.
func EmptyCartState() CartState {
	return CartState{
		Loaded:   false,
		Currency: DefaultCurrency,
		Items:    []CartItem{},
		Coupon:   nil,
	}
}

// Order is an immutable snapshot of the cart taken at checkout confirmation.
// Total is the subtotal at snapshot time; the shipping line is recomputed from
// the coupon when the order is displayed.
type Order struct {
	ID       string     `json:"id"`
	Items    []CartItem `json:"items"`
	Total    float64    `json:"total"`
	Discount float64    `json:"discount"`
	Coupon   *Coupon    `json:"coupon"`
}

// Account identifies a customer. The checkout flow consumes it read-only.
type Account struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}

// DisplayName returns the account's full name as shown on the checkout form.
func (a Account) DisplayName() string {
	return a.FirstName + " " + a.LastName
}
