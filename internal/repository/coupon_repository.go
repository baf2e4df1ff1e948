package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecomkit/storefront-cart/internal/model"
	"github.com/ecomkit/storefront-cart/pkg/database"
)

// CouponRepository provides read access to the coupon catalog using pgx.
type CouponRepository struct {
	pool database.Querier
}

// NewCouponRepository creates a new CouponRepository with the given pool.
func NewCouponRepository(pool *pgxpool.Pool) *CouponRepository {
	return &CouponRepository{pool: pool}
}

// NewCouponRepositoryWithPool creates a new CouponRepository with a custom
// querier. This is primarily used for testing.
func NewCouponRepositoryWithPool(pool database.Querier) *CouponRepository {
	return &CouponRepository{pool: pool}
}

// GetByCode retrieves a catalog coupon by code. Matching is case-insensitive;
// callers pass the code already trimmed. Returns nil, nil when no coupon
// matches (the service layer decides what that means).
func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*model.CatalogCoupon, error) {
	query := `SELECT code, title, discount, max_discount, free_shipping, eligible, rule
		FROM coupons WHERE upper(code) = upper($1)`

	var coupon model.CatalogCoupon
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&coupon.Code,
		&coupon.Title,
		&coupon.Discount,
		&coupon.MaxDiscount,
		&coupon.FreeShipping,
		&coupon.Eligible,
		&coupon.Rule,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get coupon by code %s: %w", code, err)
	}
	return &coupon, nil
}
