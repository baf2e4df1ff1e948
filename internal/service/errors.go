package service

import "errors"

var (
	// ErrCartEmpty is returned when checkout or confirmation is reached with an
	// empty cart; callers recover by redirecting to the cart view.
	ErrCartEmpty = errors.New("cart is empty")

	// ErrAuthRequired is returned when checkout is reached without a resolved
	// account; callers render a sign-in prompt instead of the order form.
	ErrAuthRequired = errors.New("authentication required")

	// ErrNoOrder is returned when the confirmation view is visited with no
	// captured order snapshot; callers recover by redirecting to the cart view.
	ErrNoOrder = errors.New("no order captured")

	// ErrCouponInFlight is returned when a coupon validation is requested while
	// a previous one for the same cart has not resolved yet.
	ErrCouponInFlight = errors.New("coupon validation already in progress")
)
