package model

// CatalogCoupon is an authored coupon definition from the coupon catalog.
// Eligible gates whether the coupon can currently be applied; Rule carries
// the authored, user-displayable explanation shown when it cannot.
type CatalogCoupon struct {
	Code         string
	Title        string
	Discount     float64
	MaxDiscount  *float64
	FreeShipping bool
	Eligible     bool
	Rule         string
}
