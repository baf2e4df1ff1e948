package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ecomkit/storefront-cart/internal/model"
	"github.com/ecomkit/storefront-cart/internal/service"
	"github.com/ecomkit/storefront-cart/internal/session"
)

// CartServiceInterface defines the interface for cart business logic.
type CartServiceInterface interface {
	Get(ctx context.Context, cartID string) model.ProjectedCart
	AddItem(ctx context.Context, cartID string, product model.Product) model.ProjectedCart
	UpdateQuantity(ctx context.Context, cartID, itemID string, quantity int) model.ProjectedCart
	RemoveItem(ctx context.Context, cartID, itemID string) model.ProjectedCart
	ApplyCoupon(ctx context.Context, cartID, code string) (*model.CouponValidation, model.ProjectedCart, error)
	RemoveCoupon(ctx context.Context, cartID string) model.ProjectedCart
	Clear(ctx context.Context, cartID string) model.ProjectedCart
}

// CartHandler handles HTTP requests for cart operations.
type CartHandler struct {
	service   CartServiceInterface
	validator *validator.Validate
}

// NewCartHandler creates a new CartHandler with the given service and validator.
func NewCartHandler(svc CartServiceInterface, v *validator.Validate) *CartHandler {
	return &CartHandler{service: svc, validator: v}
}

// formatAddItemError converts validator errors to user-facing messages.
func formatAddItemError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			field := fe.Field()
			tag := fe.Tag()

			switch field {
			case "ID":
				if tag == "required" {
					return "invalid request: id is required"
				}
				if tag == "notblank" {
					return "invalid request: id cannot be whitespace only"
				}
				return "invalid request: id is invalid"
			case "Name":
				if tag == "required" {
					return "invalid request: name is required"
				}
				if tag == "notblank" {
					return "invalid request: name cannot be whitespace only"
				}
				return "invalid request: name is invalid"
			case "Slug":
				if tag == "required" {
					return "invalid request: slug is required"
				}
				return "invalid request: slug is invalid"
			case "Price":
				if tag == "required" {
					return "invalid request: price is required"
				}
				if tag == "gte" {
					return "invalid request: price cannot be negative"
				}
				return "invalid request: price is invalid"
			default:
				if tag == "required" {
					return "invalid request: " + field + " is required"
				}
				return "invalid request: " + field + " is invalid"
			}
		}
	}
	return "invalid request"
}

// GetCart handles GET /api/cart requests.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	return c.JSON(h.service.Get(c.Context(), session.CartID(c)))
}

// AddItem handles POST /api/cart/items requests.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req model.AddItemRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatAddItemError(err)})
	}

	projection := h.service.AddItem(c.Context(), session.CartID(c), req.Product())

	return c.Status(fiber.StatusCreated).JSON(projection)
}

// UpdateQuantity handles PUT /api/cart/items/:id requests. A quantity of zero
// or less removes the item.
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	itemID := c.Params("id")
	if itemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: id is required"})
	}

	var req model.UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: quantity is required"})
	}

	return c.JSON(h.service.UpdateQuantity(c.Context(), session.CartID(c), itemID, *req.Quantity))
}

// RemoveItem handles DELETE /api/cart/items/:id requests. Absent items are a
// no-op, not an error.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	if itemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: id is required"})
	}

	return c.JSON(h.service.RemoveItem(c.Context(), session.CartID(c), itemID))
}

// ApplyCoupon handles POST /api/cart/coupon requests. Invalid codes are a 200
// outcome with a user-displayable reason, not a transport error.
func (h *CartHandler) ApplyCoupon(c *fiber.Ctx) error {
	var req model.ApplyCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	result, projection, err := h.service.ApplyCoupon(c.Context(), session.CartID(c), req.Code)
	if err != nil {
		if errors.Is(err, service.ErrCouponInFlight) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "coupon validation already in progress",
			})
		}
		log.Error().Err(err).Str("code", req.Code).Msg("failed to apply coupon")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(fiber.Map{
		"result": result,
		"cart":   projection,
	})
}

// RemoveCoupon handles DELETE /api/cart/coupon requests.
func (h *CartHandler) RemoveCoupon(c *fiber.Ctx) error {
	return c.JSON(h.service.RemoveCoupon(c.Context(), session.CartID(c)))
}

// ClearCart handles DELETE /api/cart requests.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	return c.JSON(h.service.Clear(c.Context(), session.CartID(c)))
}
