package model

// AddItemRequest is the DTO for POST /api/cart/items.
type AddItemRequest struct {
	ID    string   `json:"id" validate:"required,notblank,max=255"`
	Name  string   `json:"name" validate:"required,notblank,max=255"`
	Slug  string   `json:"slug" validate:"required,notblank,max=255"`
	Image string   `json:"image" validate:"max=2048"`
	Price *float64 `json:"price" validate:"required,gte=0"`
}

// Product converts the request into its catalog payload.
func (r AddItemRequest) Product() Product {
	return Product{
		ID:    r.ID,
		Name:  r.Name,
		Slug:  r.Slug,
		Image: r.Image,
		Price: *r.Price,
	}
}

// UpdateQuantityRequest is the DTO for PUT /api/cart/items/:id.
// Quantity may be zero or negative: that removes the item.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// ApplyCouponRequest is the DTO for coupon validation and application.
type ApplyCouponRequest struct {
	Code string `json:"code"`
}

// LoginRequest is the DTO for POST /api/auth/login.
type LoginRequest struct {
	Email string `json:"email"`
}

// CouponValidation is the outcome of validating a coupon code.
// Invalid outcomes carry a user-displayable reason, not a machine error code.
type CouponValidation struct {
	Valid        bool     `json:"valid"`
	Code         string   `json:"code,omitempty"`
	Title        string   `json:"title,omitempty"`
	Discount     float64  `json:"discount,omitempty"`
	MaxDiscount  *float64 `json:"maxDiscount,omitempty"`
	FreeShipping bool     `json:"freeShipping,omitempty"`
	Reason       string   `json:"reason,omitempty"`
}

// Coupon converts a valid validation result into the coupon stored in the cart.
func (v CouponValidation) Coupon() *Coupon {
	return &Coupon{
		Code:         v.Code,
		Title:        v.Title,
		Discount:     v.Discount,
		MaxDiscount:  v.MaxDiscount,
		FreeShipping: v.FreeShipping,
	}
}

// ProjectedCart is the read model of the cart returned by the API: the stored
// state plus the derived totals, computed fresh on every request.
type ProjectedCart struct {
	Loaded    bool       `json:"loaded"`
	Currency  string     `json:"currency"`
	Items     []CartItem `json:"items"`
	Coupon    *Coupon    `json:"coupon"`
	Subtotal  float64    `json:"subtotal"`
	Discount  float64    `json:"discount"`
	ItemCount int        `json:"itemCount"`
}

// CheckoutContact is the read-only reflection of the account shown on the
// checkout form. Address editing is out of scope; payment is a fixed mock.
type CheckoutContact struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// CheckoutSummary is the reconciled order summary for a logged-in, non-empty cart.
type CheckoutSummary struct {
	Items      []CartItem      `json:"items"`
	Currency   string          `json:"currency"`
	Subtotal   float64         `json:"subtotal"`
	Discount   float64         `json:"discount"`
	Shipping   float64         `json:"shipping"`
	FreeShip   bool            `json:"freeShipping"`
	FinalTotal float64         `json:"finalTotal"`
	Contact    CheckoutContact `json:"contact"`
	Payment    MockPayment     `json:"payment"`
}

// MockPayment is the fixed, never-collected payment block. Payment processing
// is out of scope for this storefront.
type MockPayment struct {
	Card    string `json:"card"`
	Expires string `json:"expires"`
}

// DefaultMockPayment returns the fixed payment block shown at checkout.
func DefaultMockPayment() MockPayment {
	return MockPayment{Card: "**** **** **** 4242", Expires: "12/28"}
}
