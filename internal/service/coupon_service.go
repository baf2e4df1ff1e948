package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ecomkit/storefront-cart/internal/model"
)

// Coupon validation reasons shown to the customer. These are data values
// returned to the caller, never errors.
const (
	reasonEmptyCode   = "Please enter a coupon code."
	reasonUnknownCode = "This coupon code is not valid."
)

// CouponRepositoryInterface defines the interface for coupon catalog access.
type CouponRepositoryInterface interface {
	GetByCode(ctx context.Context, code string) (*model.CatalogCoupon, error)
}

// CouponService validates coupon codes against the catalog. The cart stores
// whatever a successful validation returns and never re-validates.
type CouponService struct {
	coupons CouponRepositoryInterface
}

// NewCouponService creates a CouponService with the given catalog repository.
func NewCouponService(coupons CouponRepositoryInterface) *CouponService {
	return &CouponService{coupons: coupons}
}

// Validate resolves a coupon code to a validation outcome. Matching is
// case-insensitive: the code is trimmed and compared upper-cased. Empty,
// unknown and ineligible codes all yield a valid=false outcome with a
// user-displayable reason; only infrastructure failures return an error.
func (s *CouponService) Validate(ctx context.Context, code string) (*model.CouponValidation, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return &model.CouponValidation{Valid: false, Reason: reasonEmptyCode}, nil
	}

	coupon, err := s.coupons.GetByCode(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("validate coupon: %w", err)
	}
	if coupon == nil {
		return &model.CouponValidation{Valid: false, Reason: reasonUnknownCode}, nil
	}

	if !coupon.Eligible {
		return &model.CouponValidation{Valid: false, Reason: coupon.Rule}, nil
	}

	return &model.CouponValidation{
		Valid:        true,
		Code:         coupon.Code,
		Title:        coupon.Title,
		Discount:     coupon.Discount,
		MaxDiscount:  coupon.MaxDiscount,
		FreeShipping: coupon.FreeShipping,
	}, nil
}
