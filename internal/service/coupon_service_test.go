package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomkit/storefront-cart/internal/model"
)

// mockCouponRepository is a mock implementation of CouponRepositoryInterface.
type mockCouponRepository struct {
	getByCodeFn func(ctx context.Context, code string) (*model.CatalogCoupon, error)
	calls       int
}

func (m *mockCouponRepository) GetByCode(ctx context.Context, code string) (*model.CatalogCoupon, error) {
	m.calls++
	if m.getByCodeFn != nil {
		return m.getByCodeFn(ctx, code)
	}
	return nil, nil
}

func floatPtr(f float64) *float64 {
	return &f
}

func TestCouponService_Validate_EmptyCode(t *testing.T) {
	repo := &mockCouponRepository{}
	svc := NewCouponService(repo)

	for _, code := range []string{"", "   ", "\t\n"} {
		result, err := svc.Validate(context.Background(), code)

		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, "Please enter a coupon code.", result.Reason)
	}

	assert.Zero(t, repo.calls, "blank codes never reach the catalog")
}

func TestCouponService_Validate_UnknownCode(t *testing.T) {
	repo := &mockCouponRepository{
		getByCodeFn: func(ctx context.Context, code string) (*model.CatalogCoupon, error) {
			return nil, nil
		},
	}
	svc := NewCouponService(repo)

	result, err := svc.Validate(context.Background(), "NOPE")

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "This coupon code is not valid.", result.Reason)
}

func TestCouponService_Validate_NormalizesCode(t *testing.T) {
	var capturedCode string
	repo := &mockCouponRepository{
		getByCodeFn: func(ctx context.Context, code string) (*model.CatalogCoupon, error) {
			capturedCode = code
			return &model.CatalogCoupon{Code: "SAVE10", Title: "10% off", Discount: 10, Eligible: true}, nil
		},
	}
	svc := NewCouponService(repo)

	// A lower-cased, padded entry matches a catalog code registered upper-case.
	result, err := svc.Validate(context.Background(), "  save10 ")

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, "SAVE10", capturedCode)
	assert.Equal(t, "SAVE10", result.Code)
}

func TestCouponService_Validate_IneligibleUsesRuleText(t *testing.T) {
	repo := &mockCouponRepository{
		getByCodeFn: func(ctx context.Context, code string) (*model.CatalogCoupon, error) {
			return &model.CatalogCoupon{
				Code:     "VIP20",
				Discount: 20,
				Eligible: false,
				Rule:     "This coupon is reserved for VIP members.",
			}, nil
		},
	}
	svc := NewCouponService(repo)

	result, err := svc.Validate(context.Background(), "VIP20")

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "This coupon is reserved for VIP members.", result.Reason)
}

func TestCouponService_Validate_Eligible(t *testing.T) {
	repo := &mockCouponRepository{
		getByCodeFn: func(ctx context.Context, code string) (*model.CatalogCoupon, error) {
			return &model.CatalogCoupon{
				Code:         "SAVE20",
				Title:        "20% off, up to 15",
				Discount:     20,
				MaxDiscount:  floatPtr(15),
				FreeShipping: true,
				Eligible:     true,
			}, nil
		},
	}
	svc := NewCouponService(repo)

	result, err := svc.Validate(context.Background(), "SAVE20")

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, "SAVE20", result.Code)
	assert.Equal(t, "20% off, up to 15", result.Title)
	assert.Equal(t, 20.0, result.Discount)
	require.NotNil(t, result.MaxDiscount)
	assert.Equal(t, 15.0, *result.MaxDiscount)
	assert.True(t, result.FreeShipping)
	assert.Empty(t, result.Reason)
}

func TestCouponService_Validate_RepositoryError(t *testing.T) {
	repo := &mockCouponRepository{
		getByCodeFn: func(ctx context.Context, code string) (*model.CatalogCoupon, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewCouponService(repo)

	result, err := svc.Validate(context.Background(), "SAVE10")

	require.Error(t, err)
	assert.Nil(t, result)
}
