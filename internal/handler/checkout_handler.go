package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ecomkit/storefront-cart/internal/model"
	"github.com/ecomkit/storefront-cart/internal/service"
	"github.com/ecomkit/storefront-cart/internal/session"
)

// CheckoutServiceInterface defines the interface for checkout business logic.
type CheckoutServiceInterface interface {
	Summary(ctx context.Context, cartID, email string) (*model.CheckoutSummary, error)
	Confirm(ctx context.Context, cartID, email string) (*model.Order, error)
	Confirmation(ctx context.Context, cartID string) (*model.Order, error)
	OrderLines(order *model.Order) (shipping float64, freeShipping bool, finalTotal float64)
}

// CheckoutHandler handles HTTP requests for the checkout and confirmation flow.
type CheckoutHandler struct {
	service CheckoutServiceInterface
}

// NewCheckoutHandler creates a new CheckoutHandler with the given service.
func NewCheckoutHandler(svc CheckoutServiceInterface) *CheckoutHandler {
	return &CheckoutHandler{service: svc}
}

// GetCheckout handles GET /api/checkout requests. An empty cart redirects
// back to the cart view; a session without an account gets a sign-in prompt
// instead of the order form.
func (h *CheckoutHandler) GetCheckout(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.Context(), session.CartID(c), session.Email(c))
	if err != nil {
		if errors.Is(err, service.ErrCartEmpty) {
			return c.Redirect("/cart", fiber.StatusSeeOther)
		}
		if errors.Is(err, service.ErrAuthRequired) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":  "Sign in to check out",
				"signIn": "/signin?returnTo=/checkout",
			})
		}
		log.Error().Err(err).Msg("failed to build checkout summary")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(summary)
}

// ConfirmOrder handles POST /api/checkout/confirm requests. Confirming is
// only reachable logged in; repeat confirms return the captured order.
func (h *CheckoutHandler) ConfirmOrder(c *fiber.Ctx) error {
	order, err := h.service.Confirm(c.Context(), session.CartID(c), session.Email(c))
	if err != nil {
		if errors.Is(err, service.ErrCartEmpty) {
			return c.Redirect("/cart", fiber.StatusSeeOther)
		}
		if errors.Is(err, service.ErrAuthRequired) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":  "Sign in to check out",
				"signIn": "/signin?returnTo=/checkout",
			})
		}
		log.Error().Err(err).Msg("failed to confirm order")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().Str("order_id", order.ID).Msg("order placed")

	return c.Status(fiber.StatusCreated).JSON(h.orderBody(order))
}

// GetConfirmation handles GET /api/confirmation requests. With no captured
// order and an empty cart there is nothing to show: redirect to the cart view.
func (h *CheckoutHandler) GetConfirmation(c *fiber.Ctx) error {
	order, err := h.service.Confirmation(c.Context(), session.CartID(c))
	if err != nil {
		if errors.Is(err, service.ErrNoOrder) {
			return c.Redirect("/cart", fiber.StatusSeeOther)
		}
		log.Error().Err(err).Msg("failed to load confirmation")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	return c.JSON(h.orderBody(order))
}

func (h *CheckoutHandler) orderBody(order *model.Order) fiber.Map {
	shipping, freeShipping, finalTotal := h.service.OrderLines(order)
	return fiber.Map{
		"order":        order,
		"shipping":     shipping,
		"freeShipping": freeShipping,
		"finalTotal":   finalTotal,
	}
}
