package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ecomkit/storefront-cart/internal/model"
)

// CouponServiceInterface defines the interface for coupon validation.
type CouponServiceInterface interface {
	Validate(ctx context.Context, code string) (*model.CouponValidation, error)
}

// CouponHandler handles HTTP requests for coupon validation.
type CouponHandler struct {
	service CouponServiceInterface
}

// NewCouponHandler creates a new CouponHandler with the given service.
func NewCouponHandler(svc CouponServiceInterface) *CouponHandler {
	return &CouponHandler{service: svc}
}

// Validate handles POST /api/coupon requests. Both valid and invalid outcomes
// answer 200: an invalid code is user-displayable data, not a server error.
func (h *CouponHandler) Validate(c *fiber.Ctx) error {
	var req model.ApplyCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, err := h.service.Validate(c.Context(), req.Code)
	if err != nil {
		log.Error().Err(err).Str("code", req.Code).Msg("failed to validate coupon")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(result)
}
